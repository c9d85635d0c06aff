package hashing

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives and verifies bcrypt password hashes. The salt is generated
// per call and embedded in the encoded hash.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(rawPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether rawPassword matches the stored hash. A malformed
// stored hash is treated as a mismatch, never an error.
func (h *Hasher) Verify(rawPassword, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(rawPassword)) == nil
}
