// Package fs provides file-based storage for corpus cache artifacts.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docqa"
)

// ArtifactExt is the file extension of cache artifacts.
const ArtifactExt = ".idx"

// WriteFileAtomic writes data to path so that readers see either the old
// file or the complete new one. Data is written to a temporary file in the
// same directory, synced, and renamed over path. Missing parent directories
// are created.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// NormalizeLocation trims location and makes local paths absolute so the
// same folder reached through different relative paths shares one cache.
func NormalizeLocation(kind docqa.CorpusKind, location string) string {
	loc := strings.TrimSpace(location)
	if kind != docqa.CorpusURL {
		if abs, err := filepath.Abs(loc); err == nil {
			loc = abs
		}
	}
	return loc
}

// CorpusIdentity derives a stable cache key for a corpus source.
func CorpusIdentity(kind docqa.CorpusKind, location string) string {
	return fmt.Sprintf("%s-%016x", kind, xxhash.Sum64String(NormalizeLocation(kind, location)))
}

// CachePath returns the artifact path for a corpus identity inside cacheDir.
func CachePath(cacheDir, id string) string {
	return filepath.Join(cacheDir, id+ArtifactExt)
}
