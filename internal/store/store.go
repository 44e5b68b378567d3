package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
)

// ErrCorruptState is returned when persisted state exists but cannot be used.
var ErrCorruptState = errors.New("corrupt schedule state")

// Store persists the single schedule state blob.
type Store interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*models.State, error)
	Save(ctx context.Context, s *models.State) error
}

func encodeState(s *models.State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*models.State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorruptState)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var s models.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := s.Window().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	seen := make(map[string]bool, len(s.Rows))
	for _, r := range s.Rows {
		if r.ID == "" || seen[r.ID] {
			return nil, fmt.Errorf("%w: missing or duplicate row id %q", ErrCorruptState, r.ID)
		}
		seen[r.ID] = true
	}

	if s.Rows == nil {
		s.Rows = []models.Row{}
	}
	if s.Cells == nil {
		s.Cells = map[string]string{}
	}
	return &s, nil
}
