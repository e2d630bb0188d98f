package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/checkflac/checkflac/internal/checkcmd"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkflac",
		Short: "Validator for the tagging and naming conventions of FLAC releases",
		Long: `Checkflac validates that FLAC releases follow a set of conventions.

It checks tag consistency at the right level of the album/disc/track
hierarchy, reconciles folder and file names against the embedded metadata,
and verifies the audio data with the reference decoder when available.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(checkcmd.NewCheckCmd())
	cmd.AddCommand(checkcmd.NewReportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
