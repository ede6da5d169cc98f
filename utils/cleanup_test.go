package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOrphans(t *testing.T) {
	dir := UploadDir{Root: t.TempDir(), Sub: "berkas"}
	require.NoError(t, dir.Ensure())
	now := time.Now()
	old := now.Add(-2 * time.Hour)

	files := map[string]time.Time{
		"referenced.pdf": old,
		"orphan-old.pdf": old,
		"orphan-new.pdf": now,
	}
	for name, mtime := range files {
		p := filepath.Join(dir.Dir(), name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		require.NoError(t, os.Chtimes(p, mtime, mtime))
	}

	refs := map[string]struct{}{"/berkas/referenced.pdf": {}}
	removed, err := SweepOrphans(dir, refs, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.FileExists(t, filepath.Join(dir.Dir(), "referenced.pdf"))
	assert.NoFileExists(t, filepath.Join(dir.Dir(), "orphan-old.pdf"))
	assert.FileExists(t, filepath.Join(dir.Dir(), "orphan-new.pdf"), "files inside the grace period stay")
}

func TestSweepOrphansMissingDir(t *testing.T) {
	dir := UploadDir{Root: t.TempDir(), Sub: "pengumuman"}
	removed, err := SweepOrphans(dir, nil, time.Minute, time.Now())
	assert.NoError(t, err)
	assert.Zero(t, removed)
}
