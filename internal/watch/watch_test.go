package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func start(t *testing.T, w *Watcher) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	// Give Run a moment to enter its loop before generating events.
	time.Sleep(50 * time.Millisecond)
	return cancel, done
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w, err := New(path, func(context.Context) error {
		calls.Add(1)
		fired <- struct{}{}
		return nil
	}, WithDebounce(100*time.Millisecond), WithLogger(zap.NewNop()))
	require.NoError(t, err)

	cancel, done := start(t, w)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"Health": {"q1": 1}}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not reported")
	}
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var calls atomic.Int32
	w, err := New(path, func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	cancel, done := start(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, calls.Load())
	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_HandlerErrorsKeepWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1"), 0o644))

	fired := make(chan struct{}, 10)
	w, err := New(path, func(context.Context) error {
		fired <- struct{}{}
		return errors.New("bad document")
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	_, done := start(t, w)

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a: 2"), 0o644))
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatalf("change %d was not reported", i)
		}
	}

	w.Stop()
	w.Stop()
	assert.NoError(t, <-done)
}

func TestWatcher_RunTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	w, err := New(path, func(context.Context) error { return nil })
	require.NoError(t, err)

	cancel, done := start(t, w)

	assert.ErrorIs(t, w.Run(context.Background()), ErrAlreadyRunning)
	cancel()
	assert.NoError(t, <-done)
}

func TestNew_Errors(t *testing.T) {
	t.Run("nil callback", func(t *testing.T) {
		_, err := New("answers.json", nil)
		assert.Error(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "gone", "answers.json"), func(context.Context) error { return nil })
		assert.Error(t, err)
	})
}
