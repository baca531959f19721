package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/xhad/knowtab/internal/models"
)

// SummaryConfig represents the configuration for the result summarizer.
type SummaryConfig struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	SystemTemplate string
	BaseURL        string // Ollama server URL
}

// Summarizer turns a finished classification table into a short
// natural-language readout via a local Ollama model.
type Summarizer struct {
	config SummaryConfig
	llm    llms.Model
}

// NewWithConfig creates a new Summarizer with the given configuration.
func NewWithConfig(config SummaryConfig) (*Summarizer, error) {
	if config.Model == "" {
		config.Model = "mistral" // Default Ollama model
	}
	if config.Temperature <= 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = "You are an analyst. Summarize the following company classification table: how many companies were screened, and how they break down by Indian origin, startup status and technology relevance. Be brief."
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}

	llm, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &Summarizer{
		config: config,
		llm:    llm,
	}, nil
}

// Summarize generates a summary of the classification results.
func (s *Summarizer) Summarize(ctx context.Context, results []models.Result) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, s.config.SystemTemplate),
		llms.TextParts(llms.ChatMessageTypeHuman, formatResults(results)),
	}

	response, err := s.llm.GenerateContent(ctx, content,
		llms.WithTemperature(s.config.Temperature),
		llms.WithMaxTokens(s.config.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("summary error: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return response.Choices[0].Content, nil
}

// formatResults renders the table as plain text for the prompt.
func formatResults(results []models.Result) string {
	var b strings.Builder

	b.WriteString("Company | Is Indian | Is Startup | Is Tech\n")
	for _, result := range results {
		b.WriteString(fmt.Sprintf("%s | %s | %s | %s\n",
			result.Company, result.IsIndian, result.IsStartup, result.IsTech))
	}

	return b.String()
}
