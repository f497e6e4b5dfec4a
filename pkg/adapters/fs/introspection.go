package fs

import (
	"github.com/aretw0/introspection"
	"github.com/spf13/afero"
)

// SlotState exposes internal state for observability.
type SlotState struct {
	Dir           string `json:"dir"`
	Backend       string `json:"backend"`
	ReadOnly      bool   `json:"read_only"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	backend := "os"
	if _, ok := s.fs.(*afero.MemMapFs); ok {
		backend = "memory"
	}

	return SlotState{
		Dir:           s.config.Dir,
		Backend:       backend,
		ReadOnly:      s.config.ReadOnly,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)

func (s *Slot) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
