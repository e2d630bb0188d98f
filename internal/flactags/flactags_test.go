package flactags

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// metaBlock renders one metadata block: a one-byte header (type plus the
// last-block bit) and a 24-bit big-endian length before the payload.
func metaBlock(blockType byte, last bool, data []byte) []byte {
	header := blockType
	if last {
		header |= 0x80
	}
	out := []byte{header, byte(len(data) >> 16), byte(len(data) >> 8), byte(len(data))}
	return append(out, data...)
}

// streamInfo builds a 34-byte STREAMINFO payload, with or without an MD5
// signature in the trailing 16 bytes.
func streamInfo(md5 bool) []byte {
	data := make([]byte, 34)
	data[0], data[1] = 0x10, 0x00 // min block size 4096
	data[2], data[3] = 0x10, 0x00
	if md5 {
		for i := 18; i < 34; i++ {
			data[i] = 0xAB
		}
	}
	return data
}

// vorbisComment builds a vorbis comment payload. Lengths are little-endian
// per the vorbis spec, unlike the rest of FLAC.
func vorbisComment(vendor string, comments ...string) []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint32(out, uint32(len(vendor)))
	out = append(out, vendor...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(comments)))
	for _, c := range comments {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(c)))
		out = append(out, c...)
	}
	return out
}

func writeFLAC(t *testing.T, blocks ...[]byte) string {
	t.Helper()
	data := []byte("fLaC")
	for _, b := range blocks {
		data = append(data, b...)
	}
	path := filepath.Join(t.TempDir(), "test.flac")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeFLAC(t,
		metaBlock(0, false, streamInfo(true)),
		metaBlock(4, true, vorbisComment("reference encoder",
			"TITLE=Song",
			"artist=Artist",
			"GENRE=Rock",
			"GENRE=Pop",
			"garbage-without-separator",
		)),
	)

	f, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string][]string{
		"TITLE":  {"Song"},
		"ARTIST": {"Artist"},
		"GENRE":  {"Rock", "Pop"},
	}
	if !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("Tags = %v, want %v", f.Tags, want)
	}
	if f.Vendor != "reference encoder" {
		t.Errorf("Vendor = %q", f.Vendor)
	}
	if !f.HasMD5 {
		t.Error("HasMD5 = false, want true")
	}
	if f.HasPicture {
		t.Error("HasPicture = true, want false")
	}
}

func TestReadNoMD5(t *testing.T) {
	path := writeFLAC(t,
		metaBlock(0, false, streamInfo(false)),
		metaBlock(4, true, vorbisComment("enc")),
	)

	f, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.HasMD5 {
		t.Error("HasMD5 = true for a zeroed signature")
	}
}

func TestReadPictureBlock(t *testing.T) {
	path := writeFLAC(t,
		metaBlock(0, false, streamInfo(true)),
		metaBlock(6, true, make([]byte, 42)),
	)

	f, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if !f.HasPicture {
		t.Error("HasPicture = false, want true")
	}
	if len(f.Tags) != 0 {
		t.Errorf("Tags = %v, want none", f.Tags)
	}
}

func TestReadNotFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.flac")
	if err := os.WriteFile(path, []byte("ID3 definitely not flac"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path)
	if !errors.Is(err, ErrNotFLAC) {
		t.Errorf("Read() error = %v, want ErrNotFLAC", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.flac"))
	if !errors.Is(err, ErrNotFLAC) {
		t.Errorf("Read() error = %v, want ErrNotFLAC", err)
	}
}

func TestStreamInfoHasMD5(t *testing.T) {
	if streamInfoHasMD5(nil) {
		t.Error("nil data must not report an MD5")
	}
	if streamInfoHasMD5(make([]byte, 34)) {
		t.Error("zeroed signature must not report an MD5")
	}
	data := make([]byte, 34)
	data[20] = 1
	if !streamInfoHasMD5(data) {
		t.Error("non-zero signature must report an MD5")
	}
}
