package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/scribble/pkg/core"
)

// TimeLayout is used for timestamps in listings. Times are shown in UTC.
const TimeLayout = "2006-01-02 15:04"

// WriteList prints one line per note, marking the selected one with '*'.
// When notes is empty it prints emptyMsg instead.
func WriteList(w io.Writer, notes []core.Note, selectedID, emptyMsg string) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, emptyMsg)
		return err
	}
	for _, n := range notes {
		mark := " "
		if n.ID == selectedID {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s  %s\n", mark, n.ID, FormatTime(n.UpdatedAt), n.DisplayTitle()); err != nil {
			return err
		}
	}
	return nil
}

// WriteNote prints a note's header and content.
func WriteNote(w io.Writer, n core.Note) error {
	_, err := fmt.Fprintf(w, "# %s\nid: %s\ncreated: %s\nupdated: %s\n\n%s\n",
		n.DisplayTitle(), n.ID, FormatTime(n.CreatedAt), FormatTime(n.UpdatedAt), n.Content)
	return err
}

// FormatTime renders epoch milliseconds with TimeLayout.
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimeLayout)
}

// DeletePrompt is the question asked before deleting n.
func DeletePrompt(n core.Note) string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return fmt.Sprintf("Delete %q? This cannot be undone.", t)
	}
	return "Delete this note? This cannot be undone."
}

// Confirm writes prompt followed by " (y/N): " and reads one answer line.
// Only "y" and "yes" confirm; end of input declines.
func Confirm(r *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s (y/N): ", prompt)

	answer, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
