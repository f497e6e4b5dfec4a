package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/scribble/pkg/core"
)

// stepClock advances by one millisecond on every call.
func stepClock(start int64) core.Clock {
	now := start
	return func() time.Time {
		now++
		return time.UnixMilli(now)
	}
}

func sequentialIDs(prefix string) core.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestRepository_Create(t *testing.T) {
	repo := core.NewRepository(core.WithClock(stepClock(1000)), core.WithIDGenerator(sequentialIDs("n")))

	n := repo.Create()
	if n.ID != "n1" {
		t.Errorf("expected id 'n1', got '%s'", n.ID)
	}
	if n.Title != "" || n.Content != "" {
		t.Errorf("expected empty note, got %+v", n)
	}
	if n.CreatedAt != n.UpdatedAt {
		t.Errorf("expected createdAt == updatedAt, got %d and %d", n.CreatedAt, n.UpdatedAt)
	}
	if n.CreatedAt != 1001 {
		t.Errorf("expected timestamp 1001, got %d", n.CreatedAt)
	}
}

func TestRepository_Create_UniqueIDs(t *testing.T) {
	repo := core.NewRepository()
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := repo.Create().ID
		if id == "" {
			t.Fatal("generated empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestRepository_Update(t *testing.T) {
	t.Run("Patches Title And Bumps UpdatedAt", func(t *testing.T) {
		repo := core.NewRepository(core.WithClock(stepClock(0)))
		n := repo.Create()
		notes := repo.Add(nil, n)

		notes = repo.Update(notes, n.ID, core.TitlePatch("x"))
		got, ok := core.Find(notes, n.ID)
		if !ok {
			t.Fatal("note disappeared after update")
		}
		if got.Title != "x" {
			t.Errorf("expected title 'x', got '%s'", got.Title)
		}
		if got.UpdatedAt < got.CreatedAt {
			t.Errorf("updatedAt %d before createdAt %d", got.UpdatedAt, got.CreatedAt)
		}
		if got.Content != "" {
			t.Errorf("content should be untouched, got '%s'", got.Content)
		}
	})

	t.Run("Moves Updated Note To Top", func(t *testing.T) {
		repo := core.NewRepository(core.WithClock(stepClock(100)))
		notes := []core.Note{
			{ID: "c", UpdatedAt: 30},
			{ID: "b", UpdatedAt: 20},
			{ID: "a", UpdatedAt: 10},
		}

		notes = repo.Update(notes, "a", core.ContentPatch("hello"))
		if notes[0].ID != "a" {
			t.Errorf("expected 'a' first, got '%s'", notes[0].ID)
		}
		if notes[0].Content != "hello" {
			t.Errorf("expected content 'hello', got '%s'", notes[0].Content)
		}
		if !core.IsSorted(notes) {
			t.Errorf("collection not sorted: %+v", notes)
		}
	})

	t.Run("Unknown ID Is No-Op", func(t *testing.T) {
		repo := core.NewRepository()
		notes := []core.Note{{ID: "a", UpdatedAt: 1}}

		got := repo.Update(notes, "missing", core.TitlePatch("x"))
		if &got[0] != &notes[0] {
			t.Error("expected the input slice to be returned unchanged")
		}
		if got[0].Title != "" {
			t.Errorf("unexpected patch applied: %+v", got[0])
		}
	})

	t.Run("Does Not Mutate Input", func(t *testing.T) {
		repo := core.NewRepository(core.WithClock(stepClock(100)))
		notes := []core.Note{{ID: "a", UpdatedAt: 5}, {ID: "b", UpdatedAt: 1}}

		_ = repo.Update(notes, "b", core.TitlePatch("changed"))
		if notes[1].Title != "" || notes[1].UpdatedAt != 1 || notes[0].ID != "a" {
			t.Errorf("input mutated: %+v", notes)
		}
	})

	t.Run("Stays Sorted After Many Updates", func(t *testing.T) {
		repo := core.NewRepository(core.WithClock(stepClock(0)), core.WithIDGenerator(sequentialIDs("n")))
		var notes []core.Note
		for i := 0; i < 5; i++ {
			notes = repo.Add(notes, repo.Create())
		}
		for _, id := range []string{"n3", "n1", "n5", "n1", "n2", "n4"} {
			notes = repo.Update(notes, id, core.TitlePatch(id))
			if !core.IsSorted(notes) {
				t.Fatalf("collection not sorted after updating %s: %+v", id, notes)
			}
		}
		if notes[0].ID != "n4" {
			t.Errorf("expected last updated note first, got '%s'", notes[0].ID)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := core.NewRepository()

	t.Run("Example From Unsorted Input", func(t *testing.T) {
		notes := []core.Note{{ID: "a", UpdatedAt: 5}, {ID: "b", UpdatedAt: 10}}

		res := repo.Delete(notes, "b")
		if len(res.Notes) != 1 || res.Notes[0].ID != "a" {
			t.Fatalf("expected only 'a' to remain, got %+v", res.Notes)
		}
		if res.NextSelectedID != "a" {
			t.Errorf("expected next selection 'a', got '%s'", res.NextSelectedID)
		}
	})

	t.Run("Next Is Most Recently Updated", func(t *testing.T) {
		notes := []core.Note{{ID: "a", UpdatedAt: 1}, {ID: "b", UpdatedAt: 9}, {ID: "c", UpdatedAt: 4}}

		res := repo.Delete(notes, "a")
		if res.NextSelectedID != "b" {
			t.Errorf("expected 'b', got '%s'", res.NextSelectedID)
		}
		if !core.IsSorted(res.Notes) {
			t.Errorf("remaining notes not sorted: %+v", res.Notes)
		}
	})

	t.Run("Last Note Leaves No Selection", func(t *testing.T) {
		res := repo.Delete([]core.Note{{ID: "only"}}, "only")
		if len(res.Notes) != 0 {
			t.Errorf("expected empty collection, got %+v", res.Notes)
		}
		if res.NextSelectedID != "" {
			t.Errorf("expected no selection, got '%s'", res.NextSelectedID)
		}
	})

	t.Run("Removes Exactly One Note", func(t *testing.T) {
		notes := []core.Note{{ID: "a", UpdatedAt: 3}, {ID: "b", UpdatedAt: 2}, {ID: "c", UpdatedAt: 1}}

		res := repo.Delete(notes, "b")
		if len(res.Notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(res.Notes))
		}
		if _, ok := core.Find(res.Notes, "b"); ok {
			t.Error("deleted note still present")
		}
		if len(notes) != 3 {
			t.Error("input mutated")
		}
	})
}
