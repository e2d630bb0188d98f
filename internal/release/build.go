package release

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/checkflac/checkflac/internal/flactags"
	"github.com/checkflac/checkflac/internal/scan"
)

// Load builds the album tree rooted at the given directory, reading tags
// from every FLAC file found. A missing or empty root is a setup failure;
// an unreadable track is not, it becomes a finding during validation.
func Load(root string) (*Album, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access album directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", root)
	}

	album := NewAlbum(root)

	dirs, err := scan.Discs(album.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to scan album directory: %w", err)
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no FLAC files found under '%s'", album.Path())
	}

	for _, dir := range dirs {
		name := ""
		if dir.Path != album.Path() {
			name = filepath.Base(dir.Path)
		}
		disc := album.AddDisc(name, dir.Files)

		for _, file := range dir.Files {
			if !hasExt(file, "flac") {
				continue
			}
			track := disc.AddTrack(file, nil)
			meta, err := flactags.Read(filepath.Join(dir.Path, file))
			if err != nil {
				track.ReadErr = err
				continue
			}
			track.tags = meta.Tags
			track.HasPicture = meta.HasPicture
			track.HasMD5 = meta.HasMD5
		}
	}

	return album, nil
}
