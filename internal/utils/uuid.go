package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers used as correlation ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string. If the v7 source fails, it falls back to
// a random v4 so that a request never goes without an id.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
