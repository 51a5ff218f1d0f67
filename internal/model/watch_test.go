package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatch_SignalsWhenArtifactAppears(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := Watch(ctx, path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(path, DemoArtifact(), 0o644))

	select {
	case _, ok := <-events:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no signal after writing the artifact")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "model.json"), zap.NewNop())
	require.Error(t, err)
}
