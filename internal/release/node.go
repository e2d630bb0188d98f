// Package release implements the hierarchical validation engine for FLAC
// releases. A release is a three-level tree (album, disc, track); each level
// declares its required tags and naming convention, and validation walks the
// tree depth-first reporting findings without ever aborting.
package release

import (
	"context"
	"fmt"
)

// Level identifies a node's position in the release tree.
type Level int

const (
	LevelNone Level = iota
	LevelAlbum
	LevelDisc
	LevelTrack
)

func (l Level) String() string {
	switch l {
	case LevelAlbum:
		return "album"
	case LevelDisc:
		return "disc"
	case LevelTrack:
		return "track"
	default:
		return "none"
	}
}

// filetype is how a node of this level appears on disk, for messages.
func (l Level) filetype() string {
	if l == LevelTrack {
		return "file"
	}
	return "folder"
}

// ParseLevel parses a level name as given on the command line.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "none", "":
		return LevelNone, nil
	case "album":
		return LevelAlbum, nil
	case "disc":
		return LevelDisc, nil
	case "track":
		return LevelTrack, nil
	}
	return LevelNone, fmt.Errorf("unknown level %q (want album, disc, track or none)", s)
}

// Node is the contract shared by the three tree levels. The set of
// implementations is closed: Album, Disc and Track.
type Node interface {
	Level() Level
	// Name returns the display name, or "" when the node shares its
	// directory with its parent (a disc with no dedicated folder).
	Name() string
	// Path is the node's absolute location, used in findings.
	Path() string
	// Children returns the child nodes in stored order; nil for tracks.
	Children() []Node
	// Tags returns the raw tag map; nil above the track level.
	Tags() map[string][]string

	requiredTags() []string
	gainTags() []string
	namePattern(cfg *Config) *Pattern
	// nameChecks runs level-specific heuristics over the fields extracted
	// from a matched name.
	nameChecks(r *run, fields map[string]string)
	validate(r *run)
}

// Verifier checks the integrity of a single FLAC file. Implementations are
// advisory: an unavailable verifier disables the check, it never fails a run.
type Verifier interface {
	Available() bool
	Verify(ctx context.Context, path string) error
}

// run holds the state owned by one album validation pass. It is never shared
// between roots, so concurrent passes cannot interfere.
type run struct {
	ctx context.Context
	cfg *Config
	rep Reporter
	ver Verifier

	// requireCueLog starts from the config and may be relaxed for the
	// whole subtree when the album name declares a non-CD medium.
	requireCueLog bool

	checkedTags map[string]struct{} // deprecated-tag table consulted once per name
	sweptItems  map[string]struct{} // items already covered by the tag sweep
	seenDup     map[string]struct{} // duplicate-tag reports, keyed by path+tag
}

func newRun(ctx context.Context, cfg *Config, rep Reporter, ver Verifier) *run {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.finalize()
	if rep == nil {
		rep = ConsoleReporter{}
	}
	return &run{
		ctx:           ctx,
		cfg:           cfg,
		rep:           rep,
		ver:           ver,
		requireCueLog: !cfg.SkipCueLog,
		checkedTags:   make(map[string]struct{}),
		sweptItems:    make(map[string]struct{}),
		seenDup:       make(map[string]struct{}),
	}
}

func (r *run) reportf(n Node, kind string, sev Severity, tag, format string, args ...any) {
	r.rep.Report(Finding{
		Level:    n.Level(),
		Path:     n.Path(),
		Tag:      tag,
		Kind:     kind,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

// preValidate runs the checks shared by every level, in fixed order.
func (r *run) preValidate(n Node) {
	r.rep.BeginNode(n.Level(), n.Name())

	r.checkRequiredTags(n)
	if !r.cfg.SkipReplayGain {
		r.checkGainTags(n)
	}
	r.sweepTags(n)
	r.checkNumbers(n)
	r.checkName(n)
}

// postValidate recurses into the children unless the run stops at this level.
func (r *run) postValidate(n Node) {
	if r.cfg.StopLevel == n.Level() {
		return
	}
	for _, c := range n.Children() {
		c.validate(r)
	}
}
