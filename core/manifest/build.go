package manifest

import (
	"cmp"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"modpack-updater/core/diff"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BuildOptions configures manifest generation.
type BuildOptions struct {
	// Exclude lists doublestar globs matched against the file path without its
	// leading slash. A matching directory is skipped entirely.
	Exclude []string
}

// Build walks fsys and returns one record per regular file, sorted by path then name.
// Paths end with "/" so identifiers are unambiguous ("/mods/" + "jei.jar").
func Build(fsys billy.Filesystem, opts BuildOptions) ([]diff.FileRecord, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	records := make([]diff.FileRecord, 0)
	err := util.Walk(fsys, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		p = filepath.ToSlash(p)
		if p == "/" {
			return nil
		}
		if excluded(opts.Exclude, p) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		sum, err := hashFile(fsys, p)
		if err != nil {
			return err
		}
		dir := path.Dir(p)
		if dir != "/" {
			dir += "/"
		}
		records = append(records, diff.FileRecord{
			Path:        dir,
			Name:        path.Base(p),
			ContentHash: sum,
			Size:        info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, &diff.FileSystemError{Op: "walk", Path: fsys.Root(), Err: err}
	}

	slices.SortFunc(records, func(a, b diff.FileRecord) int {
		return cmp.Or(strings.Compare(a.Path, b.Path), strings.Compare(a.Name, b.Name))
	})
	return records, nil
}

func hashFile(fsys billy.Filesystem, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func excluded(patterns []string, p string) bool {
	name := strings.TrimPrefix(p, "/")
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, name) {
			return true
		}
	}
	return false
}
