package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn with stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	require.NoError(t, w.Close())
	os.Stderr = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("should log warnings only by default", func(t *testing.T) {
		out := captureStderr(t, func() {
			Initialize(false, false)
			Info(ctx, "quiet")
			Warn(ctx, "loud")
		})

		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "loud")
	})

	t.Run("should omit timestamps outside debug sessions", func(t *testing.T) {
		out := captureStderr(t, func() {
			Initialize(false, true)
			Info(ctx, "issue created", "number", 7)
		})

		assert.Contains(t, out, "msg=\"issue created\"")
		assert.Contains(t, out, "number=7")
		assert.NotContains(t, out, "time=")
	})

	t.Run("should keep timestamps and source in debug sessions", func(t *testing.T) {
		out := captureStderr(t, func() {
			Initialize(true, false)
			Debug(ctx, "probing template path")
		})

		assert.Contains(t, out, "time=")
		assert.Contains(t, out, "source=")
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("should fall back to the default logger on a bare context", func(t *testing.T) {
		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("should carry attached attributes through the context", func(t *testing.T) {
		out := captureStderr(t, func() {
			Initialize(false, true)
			ctx := With(context.Background(), "repo", "octocat/hello")
			Info(ctx, "template resolved")
		})

		assert.Contains(t, out, "repo=octocat/hello")
	})
}
