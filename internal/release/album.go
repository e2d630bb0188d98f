package release

import (
	"context"
	"path/filepath"
)

var (
	albumRequired = []string{"ALBUM", "DATE", "ORIGINALDATE", "ALBUMARTIST", "DISCTOTAL", "MEDIA"}
)

// Album is the top-level release unit: the directory holding one or more
// discs. It owns the whole tree for the duration of a validation pass.
type Album struct {
	dir       string
	parentDir string
	name      string
	discs     []*Disc
}

// NewAlbum builds an empty album node for the given directory. Discs are
// attached with AddDisc; no I/O happens here.
func NewAlbum(dir string) *Album {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &Album{
		dir:       abs,
		parentDir: filepath.Dir(abs),
		name:      filepath.Base(abs),
	}
}

// AddDisc appends a disc. An empty name means the disc shares the album
// directory (a single-disc release with no disc folders).
func (a *Album) AddDisc(name string, files []string) *Disc {
	dir := a.dir
	if name != "" {
		dir = filepath.Join(a.dir, name)
	}
	d := &Disc{album: a, dir: dir, name: name, files: files}
	a.discs = append(a.discs, d)
	return d
}

func (a *Album) Level() Level { return LevelAlbum }
func (a *Album) Name() string { return a.name }
func (a *Album) Path() string { return a.dir }

func (a *Album) Children() []Node {
	children := make([]Node, len(a.discs))
	for i, d := range a.discs {
		children[i] = d
	}
	return children
}

// Discs returns the album's discs in stored order.
func (a *Album) Discs() []*Disc { return a.discs }

func (a *Album) Tags() map[string][]string { return nil }

func (a *Album) requiredTags() []string           { return albumRequired }
func (a *Album) gainTags() []string               { return nil }
func (a *Album) namePattern(cfg *Config) *Pattern { return cfg.albumPat }

// Validate runs the full validation pass over the album tree. Findings go to
// rep in traversal order; ver may be nil to skip integrity checks. cfg is
// owned by this run for its duration.
func (a *Album) Validate(ctx context.Context, cfg *Config, rep Reporter, ver Verifier) {
	a.validate(newRun(ctx, cfg, rep, ver))
}

func (a *Album) validate(r *run) {
	r.preValidate(a)
	r.checkCompilation(a)
	r.postValidate(a)
}

// nameChecks handles the album-only naming heuristics: the optional extra
// info and album-artist fields, and the medium's effect on the cue/log
// requirement.
func (a *Album) nameChecks(r *run, fields map[string]string) {
	if _, ok := fields["OTHERINFO"]; !ok {
		r.reportf(a, KindBadName, SeverityWarning, "OTHERINFO",
			"No extra identifying information is included in the folder name")
	}

	// Cue and log sheets only make sense for CD rips.
	if media, ok := fields["MEDIA"]; ok && media != "CD" {
		r.requireCueLog = false
	}

	albumArtist, hasArtist := fields["ALBUMARTIST"]
	if hasArtist && r.cfg.IsVariousArtists(albumArtist) {
		r.reportf(a, KindBadName, SeverityProblem, "ALBUMARTIST",
			"An artist of '%s' should not be included in the folder name", albumArtist)
		hasArtist = false
	}

	tagArtist, aaMissing, _ := tagAndClassify(a, "ALBUMARTIST")
	if hasArtist && aaMissing == MissingAll {
		r.reportf(a, KindNameMismatch, SeverityWarning, "ALBUMARTIST",
			"The folder name includes an artist but no ALBUMARTIST tag is set")
	}
	if !hasArtist && r.cfg.AssumeAlbumArtist && tagArtist != "" && !r.cfg.IsVariousArtists(tagArtist) {
		r.reportf(a, KindNameMismatch, SeverityWarning, "ALBUMARTIST",
			"ALBUMARTIST is set to '%s' but the folder name does not include it", tagArtist)
	}

	if !hasArtist {
		if compilation, _ := ConsistentValue(a, "COMPILATION"); compilation != "1" {
			r.reportf(a, KindCompilation, SeverityWarning, "COMPILATION",
				"No/various ALBUMARTIST specified in the folder name but not tagged as a compilation")
		}
	}
}

// checkCompilation validates the relationship between ARTIST, ALBUMARTIST
// and COMPILATION across the whole album.
func (r *run) checkCompilation(a *Album) {
	compilation, cMissing, _ := tagAndClassify(a, "COMPILATION")
	if !(cMissing == MissingAll || (cMissing == MissingNone && compilation == "1")) {
		r.reportf(a, KindCompilation, SeverityProblem, "COMPILATION",
			"Invalid COMPILATION tag: must all be set to '1' or unset")
	}

	albumArtist, aaMissing, _ := tagAndClassify(a, "ALBUMARTIST")
	artist, _, multipleArtists := tagAndClassify(a, "ARTIST")

	if aaMissing == MissingAll && artist != "" && r.cfg.SuggestAlbumArtist {
		r.reportf(a, KindCompilation, SeverityProblem, "ALBUMARTIST",
			"ALBUMARTIST tag should be set to '%s' (is unset but ARTIST tags are all the same)", artist)
	}

	if artist != "" && albumArtist != "" && artist != albumArtist {
		r.reportf(a, KindCompilation, SeverityProblem, "ALBUMARTIST",
			"ALBUMARTIST is set to '%s' but all the ARTIST tags are '%s'", albumArtist, artist)
	}

	if r.cfg.IsVariousArtists(albumArtist) && compilation != "1" {
		r.reportf(a, KindCompilation, SeverityProblem, "COMPILATION",
			"ALBUMARTIST is set to '%s' but COMPILATION is not set", albumArtist)
	}

	if compilation != "1" && multipleArtists {
		r.reportf(a, KindCompilation, SeverityProblem, "COMPILATION",
			"COMPILATION is not set but there are multiple different ARTIST tags")
	}
}
