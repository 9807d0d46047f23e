package session

import (
	"strings"
	"testing"
)

func TestNewToken_Shape(t *testing.T) {
	t.Parallel()

	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		t.Fatalf("expected <ulid>.<secret>, got %q", token)
	}

	if len(parts[0]) != 26 {
		t.Errorf("expected 26-char ULID part, got %d chars", len(parts[0]))
	}

	if len(parts[1]) != tokenSecretLen*2 {
		t.Errorf("expected %d-char hex secret, got %d chars", tokenSecretLen*2, len(parts[1]))
	}
}

func TestNewToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestHashIP(t *testing.T) {
	t.Parallel()

	a := hashIP("203.0.113.7")
	b := hashIP("203.0.113.8")

	if a == b {
		t.Error("different IPs should hash differently")
	}

	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}

	if a != hashIP("203.0.113.7") {
		t.Error("hash should be deterministic")
	}
}
