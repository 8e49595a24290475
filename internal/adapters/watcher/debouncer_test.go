package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recheck/internal/adapters/watcher"
)

// batches records every callback invocation.
type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) all() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.got
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/tickets/PROJ-2.yaml")
		d.Add("/tickets/PROJ-1.yaml")
		d.Add("/tickets/PROJ-2.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, b.all(), 1)
		assert.Equal(t, []string{"/tickets/PROJ-1.yaml", "/tickets/PROJ-2.yaml"}, b.all()[0])
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/tickets/a.yaml")
		time.Sleep(80 * time.Millisecond)
		d.Add("/tickets/b.yaml")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.all(), "window restarted by the second add")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.all(), 1)
		assert.Equal(t, []string{"/tickets/a.yaml", "/tickets/b.yaml"}, b.all()[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/tickets/a.yaml")
		time.Sleep(150 * time.Millisecond)
		d.Add("/tickets/b.yaml")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/tickets/a.yaml"}, {"/tickets/b.yaml"}}, b.all())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(time.Hour, b.record)

		d.Add("/tickets/a.yaml")
		d.Flush()
		require.Equal(t, [][]string{{"/tickets/a.yaml"}}, b.all())

		// Nothing pending: no second call, and the stopped timer never fires.
		d.Flush()
		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, b.all(), 1)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/tickets/a.yaml")
		d.Stop()
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, b.all())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/tickets/a.yaml")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		assert.NotPanics(t, d.Flush)
	})
}
