package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribble"
	"github.com/aretw0/scribble/pkg/core"
)

// resetFlags restores every flag to its default, since cobra keeps flag
// state between Execute calls on the same command tree.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
}

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scribble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: notes\ndev_safety: false\n"), 0644))
	return path
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "unexpected output: %q", out)
	assert.Equal(t, core.MsgCreated, lines[0])
	return lines[1]
}

func TestCLI_NoteLifecycle(t *testing.T) {
	cfg := setupConfig(t)

	assert.Contains(t, run(t, "", "list", "--config", cfg), core.MsgEmpty)

	groceries := createdID(t, run(t, "", "new", "--config", cfg, "--title", "Groceries", "--content", "milk"))
	meeting := createdID(t, run(t, "", "new", "--config", cfg, "--title", "Meeting notes"))

	out := run(t, "", "list", "--config", cfg)
	require.Contains(t, out, "Groceries")
	require.Contains(t, out, "Meeting notes")
	assert.Less(t, strings.Index(out, "Meeting notes"), strings.Index(out, "Groceries"), "most recent note first")

	out = run(t, "", "list", "--config", cfg, "--query", "MILK")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Meeting notes")

	out = run(t, "", "list", "--config", cfg, "--glob", "meet*")
	assert.Contains(t, out, "Meeting notes")
	assert.NotContains(t, out, "Groceries")

	assert.Contains(t, run(t, "", "list", "--config", cfg, "--query", "nothing"), core.MsgNoMatch)

	var listed []core.Note
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "list", "--config", cfg, "--json")), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, meeting, listed[0].ID)

	assert.Contains(t, run(t, "", "edit", groceries, "--config", cfg, "--title", "Shopping"), "saved")
	assert.Contains(t, run(t, "", "show", groceries, "--config", cfg), "# Shopping")

	out = run(t, "n\n", "delete", meeting, "--config", cfg)
	assert.Contains(t, out, `Delete "Meeting notes"? This cannot be undone.`)
	assert.Contains(t, out, "Cancelled.")

	assert.Contains(t, run(t, "", "delete", meeting, "--config", cfg, "--yes"), core.MsgDeleted)

	out = run(t, "", "list", "--config", cfg)
	assert.Contains(t, out, "* "+groceries)
	assert.NotContains(t, out, "Meeting notes")
}

func TestCLI_ExportImport(t *testing.T) {
	cfg := setupConfig(t)

	createdID(t, run(t, "", "new", "--config", cfg, "--title", "Keep me", "--content", "body"))

	assert.Contains(t, run(t, "", "export", "--config", cfg, "--format", "yaml"), "title: Keep me")

	exported := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(exported, []byte(run(t, "", "export", "--config", cfg)), 0644))

	assert.Contains(t, run(t, "", "reset", "--config", cfg, "--yes"), "All notes deleted.")
	assert.Contains(t, run(t, "", "list", "--config", cfg), core.MsgEmpty)

	assert.Contains(t, run(t, "", "import", exported, "--config", cfg), "Imported 1 notes")
	assert.Contains(t, run(t, "", "list", "--config", cfg), "Keep me")

	yamlFile := filepath.Join(t.TempDir(), "notes.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("- id: y1\n  title: From YAML\n  updatedAt: 5\n- oops\n"), 0644))

	out := run(t, "y\n", "import", yamlFile, "--config", cfg)
	assert.Contains(t, out, "Replace 1 existing notes?")
	assert.Contains(t, out, "Imported 1 notes (skipped 1")
	assert.Contains(t, run(t, "", "show", "y1", "--config", cfg), "# From YAML")
}

func TestCLI_Inspect(t *testing.T) {
	cfg := setupConfig(t)
	createdID(t, run(t, "", "new", "--config", cfg))

	var st core.ServiceState
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "inspect", "--config", cfg)), &st))
	assert.True(t, st.Ready)
	assert.Equal(t, 1, st.NoteCount)
	assert.Equal(t, "store", st.StoreType)
}

func TestCLI_Version(t *testing.T) {
	assert.Regexp(t, `^scribble version \d+\.\d+\.\d+\n$`, run(t, "", "version"))
}

func TestReplaceNotes_ReportsSkippedSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writable, err := scribble.New(ctx, dir)
	require.NoError(t, err)
	_, err = writable.Service.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, replaceNotes(ctx, writable, []core.Note{{ID: "x", UpdatedAt: 1}}))

	readOnly, err := scribble.New(ctx, dir, scribble.WithReadOnly(true))
	require.NoError(t, err)
	err = replaceNotes(ctx, readOnly, []core.Note{{ID: "y", UpdatedAt: 2}})
	assert.ErrorIs(t, err, core.ErrReadOnly)

	again, err := scribble.New(ctx, dir)
	require.NoError(t, err)
	notes := again.Service.List()
	require.Len(t, notes, 1)
	assert.Equal(t, "x", notes[0].ID)
}
