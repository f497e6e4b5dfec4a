package platform_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribble/internal/platform"
	"github.com/aretw0/scribble/pkg/adapters/fs"
	"github.com/aretw0/scribble/pkg/core"
	"github.com/aretw0/scribble/pkg/storage"
)

// TestConcurrency_ExternalVsInternal rewrites the slot file from outside
// (sometimes with garbage) while the service saves and reloads. The
// collection must stay loadable, sorted and free of duplicate ids.
func TestConcurrency_ExternalVsInternal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := t.TempDir()
	app, err := platform.New(context.Background(), dir)
	require.NoError(t, err)
	defer app.Close()

	path := filepath.Join(dir, storage.DefaultKey+fs.FileExt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup

	// External actor
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ctx.Err() == nil; i++ {
			var data string
			if i%3 == 0 {
				data = "{ not json"
			} else {
				data = fmt.Sprintf(`[{"id":"ext-%d","title":"external","updatedAt":%d},{"id":"ext-%d","updatedAt":1}]`, i%5, time.Now().UnixMilli(), i%5)
			}
			_ = os.WriteFile(path, []byte(data), 0644)
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	// Internal actor
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			n, err := app.Service.Create(ctx)
			if err == nil {
				_, _ = app.Service.Update(ctx, n.ID, core.ContentPatch("internal"))
			}
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	// Reloader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			st := app.Service.Reload(ctx)
			assert.True(t, core.IsSorted(st.Notes))
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	wg.Wait()

	notes := app.Store.Load(context.Background())
	assert.True(t, core.IsSorted(notes))

	seen := make(map[string]bool)
	for _, n := range notes {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		assert.NotEmpty(t, n.ID)
		seen[n.ID] = true
	}
}
