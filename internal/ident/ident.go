package ident

import (
	"strings"

	"github.com/google/uuid"
)

// canonicalLen is the length of the hyphenated textual form.
const canonicalLen = 36

// New returns a fresh random identifier in canonical form.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether s is a canonical identifier.
func IsValid(s string) bool {
	if len(s) != canonicalLen || strings.ToLower(s) != s {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if id == uuid.Nil {
		return true
	}
	v := id.Version()
	return v == 4 || v == 5
}
