// Package checkcmd wires the validation engine to the command line.
package checkcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/checkflac/checkflac/internal/release"
	"github.com/checkflac/checkflac/internal/report"
	"github.com/checkflac/checkflac/internal/storage"
	"github.com/checkflac/checkflac/internal/verify"
)

type checkOptions struct {
	stopLevel      string
	noReplayGain   bool
	noVerify       bool
	noCueLog       bool
	noAlbumArtist  bool
	noTrackArtist  bool
	yearOnlyDates  bool
	noSuggestAA    bool
	variousArtists []string
	maxPathLength  int
	verifyTimeout  time.Duration
	concurrency    int
	reportPath     string
}

// NewCheckCmd creates the check command, the tool's main entry point.
func NewCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <album>...",
		Short: "Validate the conventions of one or more FLAC releases",
		Long: `Validate that FLAC release trees follow the tagging and naming conventions.

Each path is treated as an independent album. Checks run at the appropriate
level: an album-level tag has to be the same for every track of the album, a
disc-level tag for every track of that disc. Findings are reported and never
stop the run; the exit status is non-zero only when an album could not be
opened at all.`,
		Example: `  # Check a single album
  checkflac check "/music/Artist - Album (2001) [CD-FLAC]"

  # Shallow check of several albums, four at a time
  checkflac check --stop-level album --concurrency 4 /music/*

  # Full check with a YAML report
  checkflac check --report findings.yaml /music/some-album`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCheck(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.stopLevel, "stop-level", "none", "Stop recursion after this level (album, disc, track or none)")
	cmd.Flags().BoolVar(&opts.noReplayGain, "no-replaygain", false, "Skip the replay-gain tag checks")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip the FLAC integrity check")
	cmd.Flags().BoolVar(&opts.noCueLog, "no-cue-log", false, "Don't require cue and log sheets")
	cmd.Flags().BoolVar(&opts.noAlbumArtist, "no-albumartist", false, "Album folder names never include an artist")
	cmd.Flags().BoolVar(&opts.noTrackArtist, "no-track-artist", false, "Track file names never include an artist")
	cmd.Flags().BoolVar(&opts.yearOnlyDates, "year-only-dates", false, "Compare only the year of date tags against names")
	cmd.Flags().BoolVar(&opts.noSuggestAA, "no-suggest-albumartist", false, "Don't suggest setting ALBUMARTIST when all ARTIST tags agree")
	cmd.Flags().StringArrayVar(&opts.variousArtists, "various-artists", nil, "Compilation artist alias (repeatable, default 'Various Artists' and 'VA')")
	cmd.Flags().IntVar(&opts.maxPathLength, "max-path-length", 180, "Maximum track path length relative to the album's parent")
	cmd.Flags().DurationVar(&opts.verifyTimeout, "verify-timeout", verify.DefaultTimeout, "Timeout for a single FLAC verification")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Number of albums to validate in parallel")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a YAML report of all findings to this file")

	return cmd
}

func executeCheck(ctx context.Context, paths []string, opts checkOptions) error {
	stopLevel, err := release.ParseLevel(opts.stopLevel)
	if err != nil {
		return err
	}

	if len(opts.variousArtists) == 0 {
		if env := os.Getenv("CHECKFLAC_VARIOUS_ARTISTS"); env != "" {
			opts.variousArtists = strings.Split(env, ",")
		}
	}

	// Probe for the decoder once; a missing binary warns here and the
	// dependent checks are skipped silently afterwards.
	var ver release.Verifier
	if !opts.noVerify {
		ver = verify.New(opts.verifyTimeout)
	}

	slog.Info("Starting validation", "albums", len(paths), "concurrency", opts.concurrency)

	results := storage.New[*report.Result]()

	// Roots share no mutable state, so they can run in parallel. Output
	// is buffered per root and flushed in input order to stay
	// deterministic.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for _, path := range paths {
		g.Go(func() error {
			album, err := release.Load(path)
			if err != nil {
				results.Set(path, &report.Result{Err: err})
				return nil
			}
			rep := &release.CollectingReporter{}
			album.Validate(gctx, newConfig(opts, stopLevel), rep, ver)
			results.Set(path, &report.Result{Reporter: rep})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to run validation: %w", err)
	}

	var rpt *report.Report
	if opts.reportPath != "" {
		rpt = report.New(report.Config{
			StopLevel:      stopLevel.String(),
			SkipReplayGain: opts.noReplayGain,
			SkipVerify:     opts.noVerify,
			DateYearOnly:   opts.yearOnlyDates,
		})
	}

	console := release.ConsoleReporter{}
	var problems, warnings, failures int
	for _, path := range paths {
		res, ok := results.Get(path)
		if !ok {
			continue
		}
		if res.Err != nil {
			failures++
			slog.Error("Skipping album", "path", path, "err", res.Err)
			if rpt != nil {
				rpt.AddFailure(path, res.Err)
			}
			continue
		}

		res.Reporter.Replay(console)
		findings := res.Reporter.Findings()
		for _, f := range findings {
			if f.Severity == release.SeverityWarning {
				warnings++
			} else {
				problems++
			}
		}
		if rpt != nil {
			rpt.AddRoot(path, findings)
		}
	}

	printSummary(len(paths), failures, problems, warnings)

	if rpt != nil {
		if err := report.Save(opts.reportPath, rpt); err != nil {
			return err
		}
		fmt.Printf("\nReport saved to: %s\n", opts.reportPath)
	}

	if failures > 0 {
		return fmt.Errorf("%d album(s) could not be checked", failures)
	}
	return nil
}

// newConfig builds a fresh run configuration. Every root gets its own copy
// because a run may relax parts of it mid-pass.
func newConfig(opts checkOptions, stopLevel release.Level) *release.Config {
	cfg := release.DefaultConfig()
	cfg.StopLevel = stopLevel
	cfg.SkipReplayGain = opts.noReplayGain
	cfg.SkipVerify = opts.noVerify
	cfg.SkipCueLog = opts.noCueLog
	cfg.AssumeAlbumArtist = !opts.noAlbumArtist
	cfg.AssumeTrackArtist = !opts.noTrackArtist
	cfg.DateYearOnly = opts.yearOnlyDates
	cfg.SuggestAlbumArtist = !opts.noSuggestAA
	if len(opts.variousArtists) > 0 {
		cfg.VariousArtists = opts.variousArtists
	}
	if opts.maxPathLength > 0 {
		cfg.MaxPathLength = opts.maxPathLength
	}
	return cfg
}

func printSummary(albums, failures, problems, warnings int) {
	fmt.Println("\n========================================")
	fmt.Println("Validation Summary")
	fmt.Println("========================================")
	fmt.Printf("Albums checked:   %d\n", albums)
	fmt.Printf("Setup failures:   %d\n", failures)
	fmt.Printf("Problems found:   %d\n", problems)
	fmt.Printf("Warnings:         %d\n", warnings)
	fmt.Println("========================================")
}
