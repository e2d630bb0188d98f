// Package flactags reads the validation-relevant metadata of a FLAC file:
// its vorbis comments (multi-valued, order preserved), whether a picture
// block is embedded, and whether the STREAMINFO MD5 signature is set.
package flactags

import (
	"errors"
	"fmt"
	"strings"

	flacvorbis "github.com/go-flac/flacvorbis/v2"
	flac "github.com/go-flac/go-flac/v2"
)

// ErrNotFLAC marks a path that could not be read as a FLAC file.
var ErrNotFLAC = errors.New("not a readable FLAC file")

// File is the tag-relevant view of one FLAC file.
type File struct {
	Path string
	// Tags maps upper-cased comment names to their values in stored
	// order. More than one value indicates a duplicate tag.
	Tags map[string][]string
	// Vendor is the encoder string from the vorbis comment block.
	Vendor string
	// HasPicture reports an embedded PICTURE metadata block.
	HasPicture bool
	// HasMD5 reports a populated STREAMINFO MD5 signature.
	HasMD5 bool
}

// Read parses the metadata blocks of the FLAC file at path.
func Read(path string) (*File, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFLAC, path, err)
	}

	out := &File{
		Path: path,
		Tags: make(map[string][]string),
	}

	for _, block := range f.Meta {
		switch block.Type {
		case flac.StreamInfo:
			out.HasMD5 = streamInfoHasMD5(block.Data)
		case flac.VorbisComment:
			cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return nil, fmt.Errorf("failed to parse vorbis comments of %s: %w", path, err)
			}
			out.Vendor = cmt.Vendor
			for _, comment := range cmt.Comments {
				name, value, ok := strings.Cut(comment, "=")
				if !ok {
					continue
				}
				name = strings.ToUpper(name)
				out.Tags[name] = append(out.Tags[name], value)
			}
		case flac.Picture:
			out.HasPicture = true
		}
	}

	return out, nil
}

// streamInfoHasMD5 reports whether the MD5 signature, the last 16 bytes of
// the 34-byte STREAMINFO block, is non-zero.
func streamInfoHasMD5(data []byte) bool {
	if len(data) < 34 {
		return false
	}
	for _, b := range data[18:34] {
		if b != 0 {
			return true
		}
	}
	return false
}
