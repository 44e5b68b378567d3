package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
)

// FileStore keeps the state as an indented JSON file, replaced atomically on save.
type FileStore struct {
	path string
	log  *slog.Logger
}

func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{path: path, log: log}, nil
}

// Path returns the file backing the store.
func (fs *FileStore) Path() string { return fs.path }

func (fs *FileStore) Load(ctx context.Context) (*models.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	s, err := decodeState(data)
	if err != nil {
		fs.log.Error("state file unreadable", slog.String("path", fs.path), slog.Any("error", err))
		return nil, err
	}
	return s, nil
}

func (fs *FileStore) Save(ctx context.Context, s *models.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeState(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".breaklist-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	fs.log.Debug("state saved", slog.String("path", fs.path), slog.Int("rows", len(s.Rows)))
	return nil
}
