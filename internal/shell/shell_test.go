package shell_test

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribble/internal/shell"
	"github.com/aretw0/scribble/pkg/adapters/fs"
	"github.com/aretw0/scribble/pkg/core"
	"github.com/aretw0/scribble/pkg/storage"
)

func newService(t *testing.T) (*core.Service, *storage.Store) {
	t.Helper()

	now := time.UnixMilli(1_700_000_000_000)
	ids := 0
	repo := core.NewRepository(
		core.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
		core.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("n%d", ids)
		}),
	)

	store := storage.New(fs.NewMemorySlot())
	svc := core.NewService(store, repo, nil)
	svc.Load(context.Background())
	return svc, store
}

func TestShell_Session(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	script := strings.Join([]string{
		"list",
		"new",
		"title Groceries",
		"content milk and eggs",
		":n",
		"search GROC",
		"search",
		":d",
		"y",
		"show",
		"delete",
		"n",
		"bogus",
		"quit",
		"list",
	}, "\n")

	var out bytes.Buffer
	sh := shell.New(svc, strings.NewReader(script), &out, nil)
	require.NoError(t, sh.Run(ctx))

	got := out.String()
	assert.Contains(t, got, core.MsgEmpty)
	assert.Equal(t, 2, strings.Count(got, core.MsgCreated))
	assert.Contains(t, got, "  n1  2023-11-14 22:13  Groceries\n")
	assert.Contains(t, got, "* n2  2023-11-14 22:13  Untitled\n")
	assert.Contains(t, got, "Delete this note? This cannot be undone. (y/N): ")
	assert.Contains(t, got, core.MsgDeleted)
	assert.Contains(t, got, "# Groceries\nid: n1\n")
	assert.Contains(t, got, "milk and eggs")
	assert.Contains(t, got, `Delete "Groceries"? This cannot be undone. (y/N): `)
	assert.Contains(t, got, "Cancelled.")
	assert.Contains(t, got, `Error: unknown command "bogus"`)

	// Nothing after quit runs.
	assert.Equal(t, 1, strings.Count(got, core.MsgEmpty))

	notes := store.Load(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "milk and eggs", notes[0].Content)
	assert.Equal(t, "n1", svc.Snapshot().SelectedID)
}

func TestShell_NoSelection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	var out bytes.Buffer
	sh := shell.New(svc, strings.NewReader(""), &out, nil)

	require.NoError(t, sh.Exec(ctx, "show"))
	require.NoError(t, sh.Exec(ctx, "delete"))
	require.NoError(t, sh.Exec(ctx, "title orphan"))
	assert.Equal(t, 3, strings.Count(out.String(), core.MsgNotSelected))
	assert.Empty(t, svc.List())

	assert.Error(t, sh.Exec(ctx, "select"))
	require.NoError(t, sh.Exec(ctx, "select missing"))
	assert.Contains(t, out.String(), core.MsgNoteNotFound)
}

func TestShell_SearchNoMatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Create(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := shell.New(svc, strings.NewReader(""), &out, nil)
	require.NoError(t, sh.Exec(ctx, "search nothing-here"))
	assert.Equal(t, core.MsgNoMatch+"\n", out.String())
}

func TestShell_EndOfInput(t *testing.T) {
	svc, _ := newService(t)

	var out bytes.Buffer
	sh := shell.New(svc, strings.NewReader("new"), &out, nil)
	require.NoError(t, sh.Run(context.Background()))

	assert.Len(t, svc.List(), 1)
}

func TestShell_ContextCancelled(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	sh := shell.New(svc, strings.NewReader("new\n"), &out, nil)
	require.NoError(t, sh.Run(ctx))
	assert.Empty(t, svc.List())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := shell.Confirm(bufio.NewReader(strings.NewReader(tt.input)), &out, "Sure?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Sure? (y/N): ", out.String())
		})
	}
}

func TestDeletePrompt(t *testing.T) {
	assert.Equal(t, `Delete "Plan"? This cannot be undone.`, shell.DeletePrompt(core.Note{Title: " Plan "}))
	assert.Equal(t, "Delete this note? This cannot be undone.", shell.DeletePrompt(core.Note{Title: "  "}))
}
