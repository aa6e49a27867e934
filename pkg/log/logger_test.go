package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextWithFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")

	ctx, flush := NewContextWithFileLogger(context.Background(), dir, true)
	FromCtx(ctx).Debug().Str("profile", "lyla").Msg("window opened")

	flush()
	assert.NotPanics(t, flush, "flush runs once")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "window opened")
	assert.Contains(t, string(data), "profile=lyla")
}
