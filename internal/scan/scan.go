// Package scan enumerates the disc directories of an album root.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Dir is a directory holding at least one FLAC file, together with every
// file name present in it (sorted).
type Dir struct {
	Path  string
	Files []string
}

// Discs walks root depth-first and returns the directories that contain
// FLAC files, sorted by path for deterministic validation order.
func Discs(root string) ([]Dir, error) {
	byDir := make(map[string][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		dir := filepath.Dir(path)
		byDir[dir] = append(byDir[dir], d.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []Dir
	for dir, files := range byDir {
		if !containsFLAC(files) {
			continue
		}
		sort.Strings(files)
		out = append(out, Dir{Path: dir, Files: files})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func containsFLAC(files []string) bool {
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".flac") {
			return true
		}
	}
	return false
}
