package core

import "strings"

// Status messages reported after user actions.
const (
	MsgCreated      = "New note created."
	MsgDeleted      = "Note deleted."
	MsgEmpty        = "No notes yet. Create your first note."
	MsgNoMatch      = "No notes match your search."
	MsgLoading      = "Loading notes..."
	MsgNotSelected  = "No note selected."
	MsgNoteNotFound = "Note not found."
)

// State is the whole application state. It is a value: Reduce returns a
// new State instead of mutating the old one.
type State struct {
	Ready      bool
	Notes      []Note
	SelectedID string
	Query      string
	Message    string
}

// Selected returns the selected note, if any.
func (s State) Selected() (Note, bool) {
	if s.SelectedID == "" {
		return Note{}, false
	}
	return Find(s.Notes, s.SelectedID)
}

// Visible returns the notes matching the current query.
func (s State) Visible() []Note {
	return Filter(s.Notes, s.Query)
}

// EmptyMessage explains why Visible is empty.
func (s State) EmptyMessage() string {
	switch {
	case !s.Ready:
		return MsgLoading
	case strings.TrimSpace(s.Query) != "":
		return MsgNoMatch
	default:
		return MsgEmpty
	}
}

// Action is an event fed to Reduce.
type Action interface {
	isAction()
}

// Loaded replaces the collection with the one read from storage and
// selects the most recent note.
type Loaded struct{ Notes []Note }

// Reloaded replaces the collection after an external change, keeping the
// selection when the note still exists.
type Reloaded struct{ Notes []Note }

// Created adds a new empty note and selects it.
type Created struct{}

// Patched changes a note. An empty ID targets the selected note.
type Patched struct {
	ID    string
	Patch Patch
}

// Deleted removes a note. An empty ID targets the selected note.
type Deleted struct{ ID string }

// Selected changes the selection. Unknown ids are ignored.
type Selected struct{ ID string }

// Searched sets the search query.
type Searched struct{ Query string }

func (Loaded) isAction()   {}
func (Reloaded) isAction() {}
func (Created) isAction()  {}
func (Patched) isAction()  {}
func (Deleted) isAction()  {}
func (Selected) isAction() {}
func (Searched) isAction() {}

// Mutates reports whether a changes the note collection.
func Mutates(a Action) bool {
	switch a.(type) {
	case Created, Patched, Deleted:
		return true
	}
	return false
}

// Reduce computes the state following a. Actions other than Loaded are
// ignored until the state is Ready.
func (r *Repository) Reduce(s State, a Action) State {
	if _, ok := a.(Loaded); !ok && !s.Ready {
		return s
	}
	s.Message = ""

	switch a := a.(type) {
	case Loaded:
		s.Ready = true
		s.Notes = a.Notes
		s.SelectedID = ""
		if len(a.Notes) > 0 {
			s.SelectedID = a.Notes[0].ID
		}

	case Reloaded:
		s.Notes = a.Notes
		if _, ok := Find(a.Notes, s.SelectedID); !ok {
			s.SelectedID = ""
			if len(a.Notes) > 0 {
				s.SelectedID = a.Notes[0].ID
			}
		}

	case Created:
		n := r.Create()
		s.Notes = r.Add(s.Notes, n)
		s.SelectedID = n.ID
		s.Message = MsgCreated

	case Patched:
		id := a.ID
		if id == "" {
			id = s.SelectedID
		}
		if id == "" {
			s.Message = MsgNotSelected
			return s
		}
		s.Notes = r.Update(s.Notes, id, a.Patch)

	case Deleted:
		id := a.ID
		if id == "" {
			id = s.SelectedID
		}
		if _, ok := Find(s.Notes, id); !ok {
			s.Message = MsgNoteNotFound
			return s
		}
		res := r.Delete(s.Notes, id)
		s.Notes = res.Notes
		if id == s.SelectedID || s.SelectedID == "" {
			s.SelectedID = res.NextSelectedID
		}
		s.Message = MsgDeleted

	case Selected:
		if _, ok := Find(s.Notes, a.ID); ok {
			s.SelectedID = a.ID
		} else {
			s.Message = MsgNoteNotFound
		}

	case Searched:
		s.Query = a.Query
	}

	return s
}
