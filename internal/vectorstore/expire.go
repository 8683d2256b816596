// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Expire deletes snapshot artifact files under dir whose modification
// time is older than maxAge. Per-file deletion errors are reported to w
// and do not abort the scan. The sweep may race with a concurrent writer
// in a multi-session deployment; a fresh snapshot is never older than
// maxAge, so the race only affects files already due for deletion.
func Expire(dir string, maxAge time.Duration, w io.Writer) (removed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading snapshot directory %s: %w", dir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "warning: stat %s: %v\n", entry.Name(), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(w, "warning: deleting %s: %v\n", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
