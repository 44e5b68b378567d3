package store

import (
	"context"
	"sync"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
)

// MemStore holds the encoded state in memory. Saves go through the same
// encoding as the durable stores so tests exercise it.
type MemStore struct {
	mu   sync.Mutex
	blob []byte
	// Saves counts successful saves.
	Saves int
}

func NewMemStore() *MemStore { return &MemStore{} }

// SetRaw replaces the stored payload verbatim.
func (m *MemStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), data...)
}

// Raw returns a copy of the stored payload.
func (m *MemStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.blob...)
}

func (m *MemStore) Load(ctx context.Context) (*models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, nil
	}
	return decodeState(m.blob)
}

func (m *MemStore) Save(ctx context.Context, s *models.State) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = data
	m.Saves++
	return nil
}
