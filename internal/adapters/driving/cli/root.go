// Package cli implements the askdoc command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// version is set by main at startup.
var version = "dev"

// Services the commands run against, injected by main before Execute.
var (
	ingestService       driving.IngestService
	answerService       driving.AnswerService
	documentService     driving.DocumentService
	conversationService driving.ConversationService
	llmService          driven.LLMService
)

// verbose enables debug logging across all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents",
	Long: `Askdoc ingests local documents and answers natural-language
questions about them, grounded in the documents' actual content.

Supported formats: plain text, Markdown, PDF, Word (docx), Excel (xlsx),
and email (eml).
Answers cite the document passages they were generated from.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the commands need.
type Services struct {
	Ingest       driving.IngestService
	Answer       driving.AnswerService
	Document     driving.DocumentService
	Conversation driving.ConversationService
	LLM          driven.LLMService
}

// SetServices injects the service implementations the commands use.
func SetServices(s Services) {
	ingestService = s.Ingest
	answerService = s.Answer
	documentService = s.Document
	conversationService = s.Conversation
	llmService = s.LLM
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
