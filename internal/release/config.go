package release

import "strings"

// Config holds the policy for a validation run. It is read-only once
// finalized; state a run may relax mid-pass lives on the run itself.
type Config struct {
	// StopLevel halts recursion once a node of this level has been
	// validated. LevelNone checks the whole tree.
	StopLevel Level

	// SkipReplayGain disables the replay-gain tag consistency checks.
	SkipReplayGain bool
	// SkipVerify disables the external FLAC integrity check.
	SkipVerify bool
	// SkipCueLog disables the cue/log sheet requirement outright.
	SkipCueLog bool

	// AssumeAlbumArtist keeps the optional album-artist field in the album
	// naming pattern. Disable when album folders never carry an artist.
	AssumeAlbumArtist bool
	// AssumeTrackArtist likewise for the track pattern's artist field.
	AssumeTrackArtist bool

	// DateYearOnly compares only the tag's year against the name's date
	// field instead of the full overlapping precision.
	DateYearOnly bool
	// SuggestAlbumArtist reports an unset ALBUMARTIST when the ARTIST tags
	// all agree. When false that case is treated as a single-artist
	// release and passes silently.
	SuggestAlbumArtist bool

	// VariousArtists are the aliases that mark a compilation artist,
	// compared case-insensitively.
	VariousArtists []string

	// MaxPathLength bounds a track's path relative to the album's parent.
	MaxPathLength int
	// CoverFilename is the front-cover image expected next to each disc.
	CoverFilename string

	albumPat *Pattern
	discPat  *Pattern
	trackPat *Pattern
}

// DefaultConfig returns the policy matching the reference conventions.
func DefaultConfig() *Config {
	return &Config{
		AssumeAlbumArtist:  true,
		AssumeTrackArtist:  true,
		SuggestAlbumArtist: true,
		VariousArtists:     []string{"Various Artists", "VA"},
		MaxPathLength:      180,
		CoverFilename:      "cover.jpg",
	}
}

// finalize compiles the (possibly narrowed) naming patterns. Idempotent.
func (c *Config) finalize() {
	if c.albumPat != nil {
		return
	}
	c.albumPat = albumPattern(c.AssumeAlbumArtist)
	c.discPat = discPattern()
	c.trackPat = trackPattern(c.AssumeTrackArtist)
}

// IsVariousArtists reports whether s is one of the configured compilation
// artist aliases.
func (c *Config) IsVariousArtists(s string) bool {
	for _, alias := range c.VariousArtists {
		if strings.EqualFold(s, alias) {
			return true
		}
	}
	return false
}
