package utils

import "github.com/google/uuid"

// NewID generates a collision-free identifier scoped by an entity-type
// prefix ("u" users, "p" patients, "i" incidents).
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
