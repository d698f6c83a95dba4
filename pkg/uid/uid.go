package uid

import "github.com/google/uuid"

// New generates a unique identifier for request correlation.
func New() string {
	return uuid.New().String()
}
