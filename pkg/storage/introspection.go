package storage

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key       string `json:"key"`
	SlotType  string `json:"slot_type"`
	Loads     int    `json:"loads"`
	Saves     int    `json:"saves"`
	Failures  int    `json:"failures"`
	LastError string `json:"last_error,omitempty"`
	Slot      any    `json:"slot,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	st := StoreState{
		Key:       s.key,
		SlotType:  "unknown",
		Loads:     s.loads,
		Saves:     s.saves,
		Failures:  s.failures,
		LastError: s.lastErr,
	}
	s.mu.Unlock()

	if comp, ok := s.slot.(introspection.Component); ok {
		st.SlotType = comp.ComponentType()
	}
	if in, ok := s.slot.(introspection.Introspectable); ok {
		st.Slot = in.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
