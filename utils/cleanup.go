package utils

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

// SweepTarget pairs an upload folder with the table column that references its files.
type SweepTarget struct {
	Dir    UploadDir
	Model  interface{}
	Column string
}

// StartOrphanSweeper launches a background goroutine that periodically removes files
// no row references. It is best-effort and logs failures.
func StartOrphanSweeper(db *gorm.DB, targets []SweepTarget, interval, grace time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		for {
			// Sleep first to avoid racing uploads in flight at startup
			time.Sleep(interval)
			for _, t := range targets {
				refs, err := ReferencedPaths(db, t.Model, t.Column)
				if err != nil {
					Sugar.Warnf("orphan sweeper query failed dir=%s err=%v", t.Dir.Sub, err)
					continue
				}
				n, err := SweepOrphans(t.Dir, refs, grace, time.Now())
				if err != nil {
					Sugar.Warnf("orphan sweeper failed dir=%s err=%v", t.Dir.Sub, err)
				}
				if n > 0 {
					OrphansRemovedTotal.WithLabelValues(t.Dir.Sub).Add(float64(n))
					Sugar.Infof("orphan sweeper removed %d files from %s", n, t.Dir.Sub)
				}
			}
		}
	}()
}

// ReferencedPaths loads the stored public paths of one table column.
func ReferencedPaths(db *gorm.DB, model interface{}, column string) (map[string]struct{}, error) {
	var paths []string
	if err := db.Model(model).Pluck(column, &paths).Error; err != nil {
		return nil, err
	}
	refs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		refs[p] = struct{}{}
	}
	return refs, nil
}

// SweepOrphans deletes files in dir that are older than grace and absent from refs.
// It returns how many files were removed.
func SweepOrphans(dir UploadDir, refs map[string]struct{}, grace time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := refs[dir.PublicPath(e.Name())]; ok {
			continue
		}
		info, err := e.Info()
		if err != nil || now.Sub(info.ModTime()) < grace {
			continue
		}
		if err := os.Remove(filepath.Join(dir.Dir(), e.Name())); err != nil {
			Sugar.Warnf("orphan sweeper remove failed file=%s err=%v", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}
