package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Ready      bool   `json:"ready"`
	NoteCount  int    `json:"note_count"`
	SelectedID string `json:"selected_id,omitempty"`
	Query      string `json:"query,omitempty"`
	StoreType  string `json:"store_type"`
	Store      any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := ServiceState{
		Ready:      s.state.Ready,
		NoteCount:  len(s.state.Notes),
		SelectedID: s.state.SelectedID,
		Query:      s.state.Query,
		StoreType:  "unknown",
	}
	if comp, ok := s.store.(introspection.Component); ok {
		st.StoreType = comp.ComponentType()
	}
	if in, ok := s.store.(introspection.Introspectable); ok {
		st.Store = in.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
