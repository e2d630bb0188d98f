package release

import (
	"path/filepath"
	"strings"
)

var (
	discRequired = []string{"DISCNUMBER", "TRACKTOTAL", "LABEL", "CATALOGNUMBER"}
	discGain     = []string{"REPLAYGAIN_REFERENCE_LOUDNESS", "REPLAYGAIN_ALBUM_GAIN", "REPLAYGAIN_ALBUM_PEAK"}
)

// Disc is one sequence of tracks inside an album, usually a directory of its
// own. A disc sharing the album directory has no name.
type Disc struct {
	album  *Album
	dir    string
	name   string
	files  []string // all file names in the directory, sorted
	tracks []*Track
}

// AddTrack appends a track by file name with its tag map. Tag names are
// normalized to upper case; values keep their stored order.
func (d *Disc) AddTrack(name string, tags map[string][]string) *Track {
	normalized := make(map[string][]string, len(tags))
	for k, v := range tags {
		normalized[strings.ToUpper(k)] = v
	}
	t := &Track{
		disc:   d,
		path:   filepath.Join(d.dir, name),
		name:   name,
		tags:   normalized,
		HasMD5: true,
	}
	d.tracks = append(d.tracks, t)
	return t
}

func (d *Disc) Level() Level { return LevelDisc }
func (d *Disc) Name() string { return d.name }
func (d *Disc) Path() string { return d.dir }

func (d *Disc) Children() []Node {
	children := make([]Node, len(d.tracks))
	for i, t := range d.tracks {
		children[i] = t
	}
	return children
}

// Tracks returns the disc's tracks in stored order.
func (d *Disc) Tracks() []*Track { return d.tracks }

// Album returns the enclosing album.
func (d *Disc) Album() *Album { return d.album }

func (d *Disc) Tags() map[string][]string { return nil }

func (d *Disc) requiredTags() []string           { return discRequired }
func (d *Disc) gainTags() []string               { return discGain }
func (d *Disc) namePattern(cfg *Config) *Pattern { return cfg.discPat }

func (d *Disc) nameChecks(r *run, fields map[string]string) {}

func (d *Disc) validate(r *run) {
	r.preValidate(d)
	r.checkFiles(d)
	r.postValidate(d)
}

// checkFiles validates the non-FLAC contents of the disc directory: the
// cover image, the cue and log sheets, and playlist files that should not be
// distributed.
func (r *run) checkFiles(d *Disc) {
	if !containsString(d.files, r.cfg.CoverFilename) {
		r.reportf(d, KindMissingFile, SeverityProblem, "",
			"No cover art found (looking for '%s')", r.cfg.CoverFilename)
	}

	if r.requireCueLog {
		for _, ext := range []string{"cue", "log"} {
			switch n := countByExt(d.files, ext); {
			case n == 0:
				r.reportf(d, KindMissingFile, SeverityProblem, "",
					"No *.%s file found", ext)
			case n > 1:
				r.reportf(d, KindExtraFile, SeverityProblem, "",
					"Multiple *.%s files found", ext)
			}
		}
	}

	for _, ext := range []string{"m3u", "m3u8"} {
		if countByExt(d.files, ext) > 0 {
			r.reportf(d, KindExtraFile, SeverityProblem, "",
				"*.%s file detected - delete it", ext)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), ext)
}

func countByExt(files []string, ext string) int {
	n := 0
	for _, f := range files {
		if hasExt(f, ext) {
			n++
		}
	}
	return n
}
