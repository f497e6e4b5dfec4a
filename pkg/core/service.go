package core

import (
	"context"
	"log/slog"
	"sync"
)

// Service owns the application state and mirrors every change of the
// collection to its Persister.
type Service struct {
	mu     sync.RWMutex
	repo   *Repository
	store  Persister
	logger *slog.Logger
	state  State
}

// NewService creates a new Service. A nil repo uses NewRepository();
// a nil logger disables logging.
func NewService(store Persister, repo *Repository, logger *slog.Logger) *Service {
	if repo == nil {
		repo = NewRepository()
	}
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Repository returns the note operations used by the service.
func (s *Service) Repository() *Repository {
	return s.repo
}

// Load reads the collection from storage and marks the state ready.
// The most recent note becomes the selection.
func (s *Service) Load(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.store.Load(ctx)
	s.state = s.repo.Reduce(s.state, Loaded{Notes: notes})
	s.debug("notes loaded", "count", len(notes))
	return s.state
}

// Reload re-reads storage after an external change. Unlike Load it keeps
// the current selection and query. The read happens under the state lock
// so a concurrent Dispatch is never overwritten by an older snapshot.
func (s *Service) Reload(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.store.Load(ctx)
	if !s.state.Ready {
		s.state = s.repo.Reduce(s.state, Loaded{Notes: notes})
	} else {
		s.state = s.repo.Reduce(s.state, Reloaded{Notes: notes})
	}
	s.debug("notes reloaded", "count", len(notes))
	return s.state
}

// Snapshot returns the current state.
func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to the state and saves the collection when a
// changes it. It returns ErrNotLoaded before Load.
func (s *Service) Dispatch(ctx context.Context, a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := a.(Loaded); !ok && !s.state.Ready {
		return s.state, ErrNotLoaded
	}

	s.state = s.repo.Reduce(s.state, a)
	if Mutates(a) {
		s.store.Save(ctx, s.state.Notes)
	}
	return s.state, nil
}

// Create adds a new empty note, selects it and returns it.
func (s *Service) Create(ctx context.Context) (Note, error) {
	st, err := s.Dispatch(ctx, Created{})
	if err != nil {
		return Note{}, err
	}
	n, _ := st.Selected()
	s.debug("note created", "id", n.ID)
	return n, nil
}

// Get returns the note with the given id.
func (s *Service) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := Find(s.state.Notes, id)
	if !ok {
		return Note{}, ErrNoteNotFound
	}
	return n, nil
}

// Update applies patch to the note with the given id and returns it.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Note, error) {
	if _, err := s.Get(id); err != nil {
		return Note{}, err
	}
	st, err := s.Dispatch(ctx, Patched{ID: id, Patch: patch})
	if err != nil {
		return Note{}, err
	}
	n, _ := Find(st.Notes, id)
	s.debug("note updated", "id", id)
	return n, nil
}

// Delete removes the note with the given id and returns the id that is
// now selected ("" if none).
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if _, err := s.Get(id); err != nil {
		return "", err
	}
	st, err := s.Dispatch(ctx, Deleted{ID: id})
	if err != nil {
		return "", err
	}
	s.debug("note deleted", "id", id, "next", st.SelectedID)
	return st.SelectedID, nil
}

// Select changes the selected note.
func (s *Service) Select(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	_, err := s.Dispatch(ctx, Selected{ID: id})
	return err
}

// Search sets the query and returns the visible notes.
func (s *Service) Search(ctx context.Context, query string) ([]Note, error) {
	st, err := s.Dispatch(ctx, Searched{Query: query})
	if err != nil {
		return nil, err
	}
	return st.Visible(), nil
}

// List returns the whole collection, most recently updated first.
func (s *Service) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Notes
}

// Replace swaps the whole collection, e.g. after an import, and saves it.
func (s *Service) Replace(ctx context.Context, notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Ready {
		return ErrNotLoaded
	}
	s.state = s.repo.Reduce(s.state, Reloaded{Notes: notes})
	s.store.Save(ctx, s.state.Notes)
	return nil
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
