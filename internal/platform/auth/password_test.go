package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "secret1" || strings.Contains(hash, "secret1") {
		t.Error("expected hash to differ from the plaintext")
	}
	if !h.Verify("secret1", hash) {
		t.Error("expected matching password to verify")
	}
	if h.Verify("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestPasswordHasher_SaltPerCall(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret1")
	if a == b {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestPasswordHasher_CostFallback(t *testing.T) {
	if h := NewPasswordHasher(0); h.cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("x")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost, cost)
	}
}

func TestPasswordHasher_VerifyGarbageHash(t *testing.T) {
	if NewPasswordHasher(bcrypt.MinCost).Verify("secret1", "not-a-hash") {
		t.Error("expected malformed hash to fail verification")
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	if h.VerifyDummy("medtrack-dummy-password") {
		t.Error("expected dummy verification to always fail")
	}
}
