package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.FatalLevel)
	return l
}

func TestFile(t *testing.T) {
	t.Run("CallsOnChange", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "log.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

		var calls atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- File(ctx, path, func() error {
				calls.Add(1)
				return nil
			}, Options{Debounce: 10 * time.Millisecond, Logger: quietLogger()})
		}()

		// Keep writing until the watcher is registered and has fired.
		require.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte(`[{}]`), 0644)
			return calls.Load() > 0
		}, 5*time.Second, 50*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop after cancel")
		}
	})

	t.Run("IgnoresOtherFiles", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "log.json")

		var calls atomic.Int32
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0644)
		}()

		err := File(ctx, path, func() error {
			calls.Add(1)
			return nil
		}, Options{Debounce: 10 * time.Millisecond, Logger: quietLogger()})
		require.NoError(t, err)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("StopsOnCallbackError", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "log.json")
		boom := errors.New("boom")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- File(ctx, path, func() error { return boom }, Options{Debounce: 10 * time.Millisecond, Logger: quietLogger()})
		}()

		var err error
		require.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte("[]"), 0644)
			select {
			case err = <-done:
				return true
			default:
				return false
			}
		}, 5*time.Second, 50*time.Millisecond)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "log.json")
		err := File(context.Background(), path, func() error { return nil }, Options{Logger: quietLogger()})
		assert.ErrorContains(t, err, "failed to watch")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}
