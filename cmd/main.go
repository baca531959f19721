package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/xhad/knowtab/internal/models"
	"github.com/xhad/knowtab/internal/types"
	cfgPkg "github.com/xhad/knowtab/pkg/config"
	"github.com/xhad/knowtab/pkg/knowledge"
	"github.com/xhad/knowtab/pkg/llm"
	"github.com/xhad/knowtab/pkg/report"
	"github.com/xhad/knowtab/pkg/store"
	"github.com/xhad/knowtab/pkg/table"
)

type Config struct {
	APIURL      string
	PDFPath     string
	OutputPath  string
	Author      string
	Tag         string
	RateLimit   float64
	Timeout     int
	DBUrl       string
	Summarize   bool
	OllamaURL   string
	Model       string
	MaxTokens   int
	Temperature float64
}

func main() {
	config := parseFlags()

	if config.PDFPath == "" {
		fmt.Println("Usage: knowtab -pdf <companies.pdf> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(config); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	var config Config
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.PDFPath, "pdf", "", "Path to the PDF of company names (required)")
	flag.StringVar(&config.APIURL, "api-url", os.Getenv("KNOWTAB_API_URL"), "Knowledge Table API base URL")
	flag.StringVar(&config.OutputPath, "out", "", "Results file path")
	flag.StringVar(&config.Author, "author", "", "Document author metadata")
	flag.StringVar(&config.Tag, "tag", "", "Document tag metadata")
	flag.Float64Var(&config.RateLimit, "rate-limit", 0, "API requests per second")
	flag.IntVar(&config.Timeout, "timeout", 0, "API request timeout in seconds")
	flag.StringVar(&config.DBUrl, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string for the result archive")
	flag.BoolVar(&config.Summarize, "summarize", false, "Summarize the results with a local Ollama model")
	flag.StringVar(&config.OllamaURL, "ollama-url", os.Getenv("OLLAMA_BASE_URL"), "Ollama server URL")
	flag.StringVar(&config.Model, "model", "", "Ollama model for the summary")
	flag.Float64Var(&config.Temperature, "temperature", 0, "Summary temperature")
	flag.Parse()

	// Config file fills in whatever the flags left unset
	if cfg, err := cfgPkg.LoadConfig(configPath); err == nil {
		if errs := cfg.Validate(); len(errs) > 0 {
			for _, e := range errs {
				color.Red("config: %v", e)
			}
			os.Exit(2)
		}

		if config.APIURL == "" {
			config.APIURL = cfg.API.BaseURL
		}
		if config.OutputPath == "" {
			config.OutputPath = cfg.Output.Path
		}
		if config.Author == "" {
			config.Author = cfg.Upload.Author
		}
		if config.Tag == "" {
			config.Tag = cfg.Upload.Tag
		}
		if config.RateLimit == 0 {
			config.RateLimit = cfg.API.RateLimit
		}
		if config.Timeout == 0 {
			config.Timeout = cfg.API.Timeout
		}
		if config.DBUrl == "" {
			config.DBUrl = cfg.Database.URL
		}
		if config.OllamaURL == "" {
			config.OllamaURL = cfg.LLM.BaseURL
		}
		if config.Model == "" {
			config.Model = cfg.LLM.Model
		}
		if config.Temperature == 0 {
			config.Temperature = cfg.LLM.Temperature
		}
		config.MaxTokens = cfg.LLM.MaxTokens
	}

	return config
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config) error {
	ctx := context.Background()

	client, err := knowledge.NewWithConfig(knowledge.ClientConfig{
		BaseURL:   config.APIURL,
		RateLimit: config.RateLimit,
		Timeout:   time.Duration(config.Timeout) * time.Second,
		Author:    config.Author,
		Tag:       config.Tag,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize API client: %v", err)
	}

	color.Blue("\nStarting classification pipeline for %s\n", config.PDFPath)

	results, err := classify(ctx, client, config)
	if err != nil {
		return err
	}

	report.Print(os.Stdout, results)

	if err := report.Save(config.OutputPath, results); err != nil {
		return err
	}
	fmt.Printf("\nResults saved to %s\n", config.OutputPath)

	if config.DBUrl != "" {
		var archive types.ResultArchive
		archive, err = store.NewWithConfig(store.ArchiveConfig{
			ConnString: config.DBUrl,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize result archive: %v", err)
		}
		defer archive.Close()

		runID, err := archive.Store(results)
		if err != nil {
			return fmt.Errorf("failed to archive results: %v", err)
		}
		color.Green("✓ Archived run %s (%d results)\n", runID, len(results))
	}

	if config.Summarize {
		var summarizer types.Summarizer
		summarizer, err = llm.NewWithConfig(llm.SummaryConfig{
			Model:       config.Model,
			BaseURL:     config.OllamaURL,
			MaxTokens:   config.MaxTokens,
			Temperature: config.Temperature,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize summarizer: %v", err)
		}

		summarySpinner := getSpinner("Summarizing results...")
		summary, err := summarizer.Summarize(ctx, results)
		summarySpinner.Finish()
		if err != nil {
			return err
		}

		color.Cyan("\nSummary: %s\n", summary)
	}

	return nil
}

// classify walks the four pipeline steps: upload, columns, rows, cells.
// Any failed remote call aborts the run before anything is written.
func classify(ctx context.Context, client types.TableClient, config Config) ([]models.Result, error) {
	uploadSpinner := getSpinner("Uploading PDF...")
	documentID, err := client.Upload(ctx, config.PDFPath)
	uploadSpinner.Finish()
	if err != nil {
		return nil, err
	}
	color.Green("✓ Document uploaded with ID: %s\n", documentID)

	columns := table.Columns()
	color.Green("✓ Table columns created\n")

	chunkSpinner := getSpinner("Fetching document chunks...")
	chunks, err := client.Chunks(ctx, documentID)
	chunkSpinner.Finish()
	if err != nil {
		return nil, err
	}

	rows := table.Rows(chunks)
	color.Green("✓ Created %d rows from document\n", len(rows))

	cellSpinner := getSpinner("Generating table cells...")
	cells, err := client.GenerateCells(ctx, columns, rows)
	cellSpinner.Finish()
	if err != nil {
		return nil, err
	}
	color.Green("✓ Generated %d cells\n", len(cells))

	return report.Aggregate(rows, cells), nil
}
