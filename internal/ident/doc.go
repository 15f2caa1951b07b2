// Package ident generates and checks the identifiers assigned to book records.
//
// # Overview
//
// Every record gets a random (version 4) UUID when it is created. Clients never
// choose identifiers; they only send them back in request paths, so the package
// also answers whether a path segment has the canonical textual form before any
// lookup is attempted.
//
// # Canonical Form
//
// An identifier is accepted when it is exactly 36 characters long, uses lowercase
// hexadecimal digits, has hyphens after the 8th, 12th, 16th and 20th digit, and is
// either the nil UUID or carries version 4 or 5 in the version digit:
//
//	xxxxxxxx-xxxx-4xxx-xxxx-xxxxxxxxxxxx
//
// The variant digit is not checked.
//
// Forms that uuid.Parse tolerates but that are not canonical (braces, the urn:uuid:
// prefix, 32 digits without hyphens, uppercase digits) are rejected.
package ident
