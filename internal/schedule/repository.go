package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

// Repository serializes every load-mutate-save cycle against a Store behind
// one mutex. Fresh states use the configured window.
type Repository struct {
	mu     sync.Mutex
	store  store.Store
	window timewindow.Window
	now    func() time.Time
}

func NewRepository(st store.Store, window timewindow.Window, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{store: st, window: window, now: now}
}

// Update loads the state, applies fn and saves the result. Nothing is saved
// when fn returns an error.
func (r *Repository) Update(ctx context.Context, fn func(*models.State) error) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.SortRowsByOrder()
	if err := r.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return s, nil
}

// Read returns the current state without saving it.
func (r *Repository) Read(ctx context.Context) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Reset replaces whatever is stored with a fresh state. It never reads the
// old state, so it also recovers from corrupt content.
func (r *Repository) Reset(ctx context.Context) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := models.NewState(r.window, r.now())
	if err := r.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return s, nil
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time { return r.now() }

func (r *Repository) load(ctx context.Context) (*models.State, error) {
	s, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if s == nil {
		s = models.NewState(r.window, r.now())
	}
	return s, nil
}
