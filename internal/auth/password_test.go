package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Hash(t *testing.T) {
	password := "securePassword123"

	hash, err := NewHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "" || hash == password {
		t.Errorf("expected an opaque hash, got %q", hash)
	}
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash1, err := h.Hash("securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := h.Hash("securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password should produce different hashes due to salt")
	}
}

func TestHasher_Cost(t *testing.T) {
	hash, err := NewHasher(bcrypt.MinCost).Hash("pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost, cost)
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	if h := NewHasher(99); h.cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
	if h := NewHasher(0); h.cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
}

func TestHasher_Check(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"correct", "securePassword123", false},
		{"wrong", "wrongPassword456", true},
		{"empty", "", true},
		{"case differs", strings.ToUpper("securePassword123"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Check(hash, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasher_CheckInvalidHash(t *testing.T) {
	if err := NewHasher(bcrypt.MinCost).Check("not-a-valid-bcrypt-hash", "password"); err == nil {
		t.Error("expected error for invalid hash format")
	}
}
