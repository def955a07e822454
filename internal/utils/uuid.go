package utils

import "github.com/google/uuid"

// UUIDGenerator produces record identifiers for optimistic local creates.
// Version 7 keeps ids time-ordered, which keeps cache listings stable
// before the server has confirmed the record.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new uuid-v7 string, falling back to v4 when the
// monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
