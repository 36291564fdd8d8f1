package scan

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
)

// walkFiles walks the tree rooted at root and calls fn for every regular
// file, in lexical order. Symbolic links are never followed: WalkDir does
// not descend into linked directories, and non-regular entries (including
// file symlinks) are filtered out here, so a link cycle back to an
// ancestor cannot make the walk revisit it. Per-path errors are logged
// and skipped so one unreadable entry never aborts the scan.
func walkFiles(ctx context.Context, root string, fn func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil // Continue walking
		}

		if d.IsDir() {
			return nil
		}

		// Skip symlinks, devices, sockets, fifos
		if !d.Type().IsRegular() {
			return nil
		}

		fn(path)
		return nil
	})
}
