// Command askdoc is a local document question answering CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	configfile "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/services"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors/chunker"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	docStore := store.DocumentStore()
	convStore := store.ConversationStore()

	chunkOpts := []chunker.Option{}
	if size := config.GetInt("chunk.size"); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := config.GetInt("chunk.overlap"); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}
	chunkProcessor, err := chunker.New(chunkOpts...)
	if err != nil {
		return fmt.Errorf("configure chunker: %w", err)
	}

	llm, err := buildLLM(config)
	if err != nil {
		return err
	}
	defer llm.Close()

	retrieval := services.NewRetrievalService(docStore)
	prompts := services.NewPromptBuilder(config.GetInt("prompt.context_budget"))

	answerOpts := []services.AnswerOption{}
	if k := config.GetInt("retrieval.top_k"); k > 0 {
		answerOpts = append(answerOpts, services.WithTopK(k))
	}
	if seconds := config.GetInt("llm.timeout_seconds"); seconds > 0 {
		answerOpts = append(answerOpts, services.WithGenerationTimeout(time.Duration(seconds)*time.Second))
	}

	cli.SetServices(cli.Services{
		Ingest:       services.NewIngestService(docStore, normalisers.Defaults(), postprocessors.NewPipeline(chunkProcessor)),
		Answer:       services.NewAnswerService(retrieval, prompts, llm, convStore, answerOpts...),
		Document:     services.NewDocumentService(docStore),
		Conversation: services.NewConversationService(convStore, docStore),
		LLM:          llm,
	})
	cli.SetVersion(version)

	return cli.Execute()
}

// buildLLM selects the generation backend from configuration.
// Ollama is the default; set llm.provider to "openai" to use the
// OpenAI API (requires OPENAI_API_KEY or llm.api_key).
func buildLLM(config *configfile.ConfigStore) (driven.LLMService, error) {
	timeout := time.Duration(config.GetInt("llm.timeout_seconds")) * time.Second

	switch provider := config.GetString("llm.provider"); provider {
	case "", "ollama":
		return ollama.NewLLMService(ollama.LLMConfig{
			BaseURL: config.GetString("llm.base_url"),
			Model:   config.GetString("llm.model"),
			Timeout: timeout,
		}), nil

	case "openai":
		apiKey := config.GetString("llm.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		svc, err := openai.NewLLMService(openai.LLMConfig{
			APIKey:  apiKey,
			BaseURL: config.GetString("llm.base_url"),
			Model:   config.GetString("llm.model"),
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("configure openai: %w", err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unknown llm.provider %q (expected \"ollama\" or \"openai\")", provider)
	}
}
