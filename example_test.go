package scribble_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/scribble"
	"github.com/aretw0/scribble/pkg/core"
)

// Example_basic creates a note, gives it a title and lists the collection.
func Example_basic() {
	ctx := context.Background()

	app, err := scribble.New(ctx, "", scribble.WithAdapter(scribble.AdapterMemory))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	note, err := app.Service.Create(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := app.Service.Update(ctx, note.ID, core.TitlePatch("Groceries")); err != nil {
		log.Fatal(err)
	}

	for _, n := range app.Service.List() {
		fmt.Println(n.DisplayTitle())
	}
	// Output:
	// Groceries
}

// Example_ordering shows that the most recently updated note comes first.
func Example_ordering() {
	ctx := context.Background()

	now := time.UnixMilli(1_000)
	clock := func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}

	app, err := scribble.New(ctx, "",
		scribble.WithAdapter(scribble.AdapterMemory),
		scribble.WithClock(clock),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	first, _ := app.Service.Create(ctx)
	second, _ := app.Service.Create(ctx)
	app.Service.Update(ctx, second.ID, core.TitlePatch("second"))
	app.Service.Update(ctx, first.ID, core.TitlePatch("first"))

	for _, n := range app.Service.List() {
		fmt.Println(n.Title)
	}
	next, _ := app.Service.Delete(ctx, first.ID)
	fmt.Println(next == second.ID)
	// Output:
	// first
	// second
	// true
}
