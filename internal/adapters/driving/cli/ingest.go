package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents for question answering",
	Long: `Reads the given files, extracts their text, and stores them in the
local document corpus. A file whose name matches an already ingested
document is skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	failures := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failures++
			continue
		}

		result, err := ingestService.Ingest(ctx, &domain.RawFile{
			Filename: filepath.Base(path),
			Data:     data,
		})
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failures++
			continue
		}

		if result.AlreadyExists {
			cmd.Printf("  %s: already ingested as %s (%d chunks)\n",
				result.Document.Filename, result.Document.ID, result.ChunkCount)
			continue
		}
		cmd.Printf("  %s: ingested as %s (%d chunks)\n",
			result.Document.Filename, result.Document.ID, result.ChunkCount)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failures, len(args))
	}
	return nil
}
