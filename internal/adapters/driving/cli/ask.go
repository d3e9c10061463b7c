package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

var (
	askConversation string
	askJSON         bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Answers a question using the ingested documents as the only source
of truth. The answer cites the document passages it was grounded in.

Pass --conversation to continue an earlier conversation; without it a
new conversation is started and its ID printed for follow-ups.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askConversation, "conversation", "c", "", "conversation ID to continue")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()

	if llmService != nil {
		if err := llmService.Ping(ctx); err != nil {
			logger.Warn("Generation backend unreachable: %v", err)
		}
	}

	result, err := answerService.Answer(ctx, args[0], askConversation)
	if err != nil {
		var pipeErr *domain.PipelineError
		if errors.As(err, &pipeErr) && pipeErr.Retriable {
			return fmt.Errorf("%w (this may succeed on retry)", err)
		}
		return err
	}

	if askJSON {
		return outputAnswerJSON(cmd, result)
	}
	return outputAnswerText(cmd, result)
}

func outputAnswerJSON(cmd *cobra.Command, result *domain.AnswerResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, result *domain.AnswerResult) error {
	cmd.Println(result.Answer)

	if len(result.Sources) > 0 {
		cmd.Println("\nSources:")
		for i, src := range result.Sources {
			cmd.Printf("  [%d] %s, chunk %d\n", i+1, src.DocumentFilename, src.ChunkIndex+1)
		}
	}

	cmd.Printf("\nConversation: %s\n", result.ConversationID)
	return nil
}
