package release

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

var (
	trackRequired = []string{"ARTIST", "TRACKNUMBER", "TITLE"}
	trackGain     = []string{"REPLAYGAIN_TRACK_GAIN", "REPLAYGAIN_TRACK_PEAK"}
)

// Track is a single tagged FLAC file, the leaf of the tree.
type Track struct {
	disc *Disc
	path string
	name string
	tags map[string][]string

	// HasPicture marks an embedded picture block, which should be
	// replaced by an external cover image.
	HasPicture bool
	// HasMD5 marks a populated STREAMINFO MD5 signature.
	HasMD5 bool
	// ReadErr is set when the file could not be read as tagged FLAC; the
	// track then validates with an empty tag set.
	ReadErr error
}

func (t *Track) Level() Level              { return LevelTrack }
func (t *Track) Name() string              { return t.name }
func (t *Track) Path() string              { return t.path }
func (t *Track) Children() []Node          { return nil }
func (t *Track) Tags() map[string][]string { return t.tags }

// Disc returns the enclosing disc.
func (t *Track) Disc() *Disc { return t.disc }

func (t *Track) requiredTags() []string           { return trackRequired }
func (t *Track) gainTags() []string               { return trackGain }
func (t *Track) namePattern(cfg *Config) *Pattern { return cfg.trackPat }

func (t *Track) validate(r *run) {
	if t.ReadErr != nil {
		r.rep.BeginNode(LevelTrack, t.name)
		r.reportf(t, KindUnreadable, SeverityProblem, "",
			"Unable to read FLAC metadata: %v", t.ReadErr)
		return
	}

	r.preValidate(t)

	rel, err := filepath.Rel(t.disc.album.parentDir, t.path)
	if err != nil {
		rel = t.path
	}
	if len(rel) > r.cfg.MaxPathLength {
		r.reportf(t, KindPathTooLong, SeverityProblem, "",
			"The path '%s' is too long (%d > %d)", rel, len(rel), r.cfg.MaxPathLength)
	}

	if artist, ok := ConsistentValue(t, "ARTIST"); ok && r.cfg.IsVariousArtists(artist) {
		r.reportf(t, KindCompilation, SeverityProblem, "ARTIST",
			"Invalid ARTIST: can't be '%s' (use ALBUMARTIST instead)", artist)
	}

	if number, ok := ConsistentValue(t, "TRACKNUMBER"); ok && strings.Contains(number, "/") {
		r.reportf(t, KindBadTotal, SeverityProblem, "TRACKNUMBER",
			"TRACKNUMBER is in 'number/total' style ('%s') - use a plain number and TRACKTOTAL", number)
	}

	if !t.HasMD5 {
		// To set the MD5: `flac --best -f <file>`
		r.reportf(t, KindVerifyFailed, SeverityProblem, "",
			"No MD5 signature in the STREAMINFO block - the audio data cannot be verified")
	}

	if !r.cfg.SkipVerify && r.ver != nil && r.ver.Available() {
		if err := r.ver.Verify(r.ctx, t.path); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				r.reportf(t, KindVerifyFailed, SeverityProblem, "",
					"FLAC verification timed out - treating the file as failed")
			} else {
				r.reportf(t, KindVerifyFailed, SeverityProblem, "",
					"Failed to verify FLAC file - it may be corrupt or not have an MD5 set")
			}
		}
	}

	if t.HasPicture {
		r.reportf(t, KindEmbeddedArt, SeverityProblem, "",
			"Album art is embedded - remove it and provide a high-res '%s' instead", r.cfg.CoverFilename)
	}

	r.postValidate(t)
}

// nameChecks decides whether the artist belongs in the track file name: it
// is redundant when the whole disc shares one ARTIST, and required when the
// disc's ARTIST tags disagree.
func (t *Track) nameChecks(r *run, fields map[string]string) {
	if !r.cfg.AssumeTrackArtist {
		return
	}

	discArtist, _, multiple := tagAndClassify(t.disc, "ARTIST")
	_, named := fields["ARTIST"]

	if discArtist != "" && named {
		r.reportf(t, KindBadName, SeverityProblem, "ARTIST",
			"ARTIST tags are all the same and therefore shouldn't be in the track name")
	} else if multiple && !named {
		r.reportf(t, KindBadName, SeverityProblem, "ARTIST",
			"Multiple ARTIST tags - the track should include the ARTIST")
	}
}
