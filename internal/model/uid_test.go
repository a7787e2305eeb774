package model

import (
	"strings"
	"testing"
)

func TestParseUIDCanonicalizes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123e4567-e89b-12d3-a456-426614174000", "123e4567-e89b-12d3-a456-426614174000"},
		{"123E4567-E89B-12D3-A456-426614174000", "123e4567-e89b-12d3-a456-426614174000"},
		// v4 identifier
		{"a17853e0-90ab-4613-94a4-ac7b179f8315", "a17853e0-90ab-4613-94a4-ac7b179f8315"},
	}

	for _, tt := range tests {
		got, ferr := ParseUID(tt.input)
		if ferr != nil {
			t.Errorf("ParseUID(%q) failed: %v", tt.input, ferr)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseUID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseUIDRejectsMalformed(t *testing.T) {
	inputs := []string{"", "not-a-uuid", "123e4567e89b12d3a456", "123e4567-e89b-12d3-a456-42661417400g"}

	for _, input := range inputs {
		if _, ferr := ParseUID(input); ferr == nil {
			t.Errorf("ParseUID(%q) should fail", input)
		} else if ferr.Code != CodeInvalidFormat {
			t.Errorf("ParseUID(%q) code = %q, want %q", input, ferr.Code, CodeInvalidFormat)
		}
	}
}

func TestNewUIDShape(t *testing.T) {
	seen := make(map[UID]bool)
	for i := 0; i < 100; i++ {
		id := NewUID()
		if len(id) != 36 || strings.ToLower(id.String()) != id.String() {
			t.Fatalf("NewUID() = %q, want lowercase 36-char form", id)
		}
		if _, ferr := ParseUID(id.String()); ferr != nil {
			t.Fatalf("generated UID does not re-parse: %v", ferr)
		}
		if seen[id] {
			t.Fatalf("duplicate UID generated: %s", id)
		}
		seen[id] = true
	}
}
