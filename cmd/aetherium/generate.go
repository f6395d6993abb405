package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aetherium/content-engine/internal/config"
	"github.com/aetherium/content-engine/internal/db"
	"github.com/aetherium/content-engine/internal/extract"
	"github.com/aetherium/content-engine/internal/llm"
	"github.com/aetherium/content-engine/internal/pipeline"
	"github.com/aetherium/content-engine/internal/trends"
)

var (
	generateURL    string
	generateUserID string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the generation pipeline once and print the result",
	Long:  `Run the full generation pipeline for a single article URL without starting the server. The result document is printed as JSON.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateURL, "url", "", "Article URL to repurpose (required)")
	generateCmd.Flags().StringVar(&generateUserID, "user", "", "User identifier for persona and exemplar lookup")
	_ = generateCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var llmClient llm.Client
	if cfg.LLMProvider == "openai" {
		llmClient, err = llm.NewOpenAIClient(llm.DefaultOpenAIConfig(), cfg.OpenAIAPIKey)
	} else {
		llmClient, err = llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	}
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	var extractOpts []extract.Option
	if cfg.UseBrowser {
		extractOpts = append(extractOpts, extract.WithBrowserFallback())
	}

	p := pipeline.New(pipeline.Config{
		LLM:         llmClient,
		Store:       database,
		Trends:      trends.NewClient(cfg.SerperAPIKey),
		Extractor:   extract.New(extractOpts...),
		CallTimeout: cfg.CallTimeout,
	})

	result, err := p.Run(ctx, pipeline.Request{URL: generateURL, UserID: generateUserID})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
