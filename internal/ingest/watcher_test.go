package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}

func TestStartWatcher_InitialScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"))
	writeFile(t, filepath.Join(root, "b.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	select {
	case path := <-events:
		assert.Equal(t, filepath.Join(root, "a.json"), path)
	case <-time.After(5 * time.Second):
		t.Fatal("initial scan emitted nothing")
	}

	cancel()
	drainUntilClosed(t, events)
}

func TestStartWatcher_DebouncedEvent(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, Debounce: time.Millisecond})
	require.NoError(t, err)

	target := filepath.Join(root, "payload.json")
	writeFile(t, target)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case path := <-events:
			if path == target {
				cancel()
				drainUntilClosed(t, events)
				return
			}
		case <-deadline:
			t.Fatal("debounced event never arrived")
		}
	}
}

func TestStartWatcher_BurstThenCancel(t *testing.T) {
	// A rapid write burst with a tiny debounce window while the context is
	// torn down mid-stream; the loop must flush and close cleanly.
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, Debounce: time.Millisecond})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if err := os.WriteFile(filepath.Join(root, fmt.Sprintf("p%03d.json", i)), []byte(`{"tokens": []}`), 0o644); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	// Consume while the burst is in flight, then cancel mid-stream.
	timeout := time.After(5 * time.Second)
	received := 0
	for received < 10 {
		select {
		case _, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before cancellation")
			}
			received++
		case <-timeout:
			t.Fatal("no events received from burst")
		}
	}
	cancel()

	<-done
	drainUntilClosed(t, events)
}

func drainUntilClosed(t *testing.T, events <-chan string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not shut down")
		}
	}
}
