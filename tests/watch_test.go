package tests_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockstar/posy"
)

// TestWatch_FileCreation tests that writing a metadata file under the
// watched root produces a fresh report.
func TestWatch_FileCreation(t *testing.T) {
	root := t.TempDir()
	distInfo := filepath.Join(root, "gamma-2.0.dist-info")
	require.NoError(t, os.MkdirAll(distInfo, 0755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scanner := posy.NewScanner(root)
	events, err := scanner.Watch(ctx)
	require.NoError(t, err)
	require.NotNil(t, events)

	// Wait a bit to ensure watcher is ready (naive)
	time.Sleep(100 * time.Millisecond)

	content := []byte("Name: gamma\nVersion: 2.0\n")
	require.NoError(t, os.WriteFile(filepath.Join(distInfo, "METADATA"), content, 0644))

	select {
	case report := <-events:
		assert.Equal(t, "gamma-2.0.dist-info/METADATA", report.Path)
		require.NoError(t, report.Err)
		name, _ := report.Doc.Fields.First("Name")
		assert.Equal(t, "gamma", name)
	case <-ctx.Done():
		t.Fatal("Timed out waiting for report")
	}
}

// TestWatch_BrokenFileReported tests that a file that stops parsing is
// reported with its error rather than dropped.
func TestWatch_BrokenFileReported(t *testing.T) {
	root := t.TempDir()
	distInfo := filepath.Join(root, "delta-1.0.dist-info")
	require.NoError(t, os.MkdirAll(distInfo, 0755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := posy.NewScanner(root).Watch(ctx)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(distInfo, "METADATA"), []byte(": no key\n"), 0644))

	select {
	case report := <-events:
		assert.Equal(t, "delta-1.0.dist-info/METADATA", report.Path)
		require.Error(t, report.Err)
		assert.Nil(t, report.Doc)
	case <-ctx.Done():
		t.Fatal("Timed out waiting for report")
	}
}

// TestWatch_ReportSourceBridge tests the supervised path the CLI uses:
// watch reports flowing through the lifecycle event source.
func TestWatch_ReportSourceBridge(t *testing.T) {
	root := t.TempDir()
	distInfo := filepath.Join(root, "epsilon-1.0.dist-info")
	require.NoError(t, os.MkdirAll(distInfo, 0755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := posy.NewScanner(root).Watch(ctx)
	require.NoError(t, err)

	source := posy.NewReportSource(events)
	require.NoError(t, source.Start(ctx))

	time.Sleep(100 * time.Millisecond)

	content := []byte("Name: epsilon\nVersion: 1.0\n")
	require.NoError(t, os.WriteFile(filepath.Join(distInfo, "METADATA"), content, 0644))

	select {
	case event := <-source.Events():
		assert.Equal(t, "ok     epsilon-1.0.dist-info/METADATA  epsilon 1.0", event.String())
	case <-ctx.Done():
		t.Fatal("Timed out waiting for bridged report")
	}
}

// TestWatch_ChannelClosesOnCancel tests that cancelling the context
// shuts the event stream down.
func TestWatch_ChannelClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := posy.NewScanner(t.TempDir()).Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed, not deliver")
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for channel close")
	}
}
