package utils

import "testing"

func TestNewSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if !IsSessionID(id) {
			t.Fatalf("malformed id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestIsSessionID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"s-0123456789abcdef", true},
		{"x-0123456789abcdef", false},
		{"s-0123456789abcdeg", false},
		{"s-0123", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSessionID(tt.in); got != tt.want {
			t.Errorf("IsSessionID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
