package core

import "strings"

// UntitledLabel is shown in place of an empty title.
const UntitledLabel = "Untitled"

// Note is the central entity of the domain.
// It represents a titled text record identified by an ID.
// Timestamps are epoch milliseconds.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"`
}

// DisplayTitle returns the trimmed title, or UntitledLabel when it is blank.
func (n Note) DisplayTitle() string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	return UntitledLabel
}

// Patch is a partial change to a note. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
}

// TitlePatch builds a Patch that only changes the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// ContentPatch builds a Patch that only changes the content.
func ContentPatch(content string) Patch {
	return Patch{Content: &content}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

func (p Patch) apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	return n
}
