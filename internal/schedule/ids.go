package schedule

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces opaque row ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator yields random 32 hex character ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
