package ident

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that generated identifiers are canonical and pairwise distinct.
func TestNew(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		id := New()
		require.True(t, IsValid(id), "generated id %q should be valid", id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q after %d generations", id, i)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestIsValid(t *testing.T) {
	v4 := uuid.NewString()
	v5 := uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://example.com/books")).String()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"version 4", v4, true},
		{"version 5", v5, true},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", true},
		{"empty", "", false},
		{"not a uuid", "not-a-uuid", false},
		{"uppercase", strings.ToUpper(v4), false},
		{"braces", "{" + v4 + "}", false},
		{"urn prefix", "urn:uuid:" + v4, false},
		{"no hyphens", strings.ReplaceAll(v4, "-", ""), false},
		{"misplaced hyphen", v4[:7] + "-" + v4[7:8] + v4[9:], false},
		{"non hex digit", "g" + v4[1:], false},
		{"version 1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"non rfc variant", "9b2f1c34-4f7e-4a3b-c2d1-0e5f6a7b8c9d", true},
		{"version 5 microsoft variant", "9b2f1c34-4f7e-5a3b-c2d1-0e5f6a7b8c9d", true},
		{"trailing space", v4 + " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.input), "IsValid(%q)", tt.input)
		})
	}
}
