package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/pipeline"
	"github.com/ymiyake/bukkengen/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate descriptions for many listings from a file",
	Long: `Batch processes one request per input line concurrently. A line is
either a listing URL (a single-source request using the flag defaults)
or a JSON request object for full control:

  https://example.jp/bukken/123
  {"sources":["https://example.jp/bukken/456"],"scope":"unit","tone":"friendly","target_length":300}

Each result is written to the output directory as JSON and plain text.

Example:
  bukkengen batch listings.txt
  bukkengen batch listings.txt --concurrency 8 --output-dir ./descriptions`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent requests")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./bukkengen-out", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Defaults inherited by bare-URL lines; JSON lines override per field.
	batchCmd.Flags().StringVar(&scopeFlag, "scope", "building", "default presentation scope (unit, building)")
	batchCmd.Flags().StringVar(&toneFlag, "tone", "neutral", "default tone (formal, neutral, friendly)")
	batchCmd.Flags().IntVar(&lengthFlag, "length", 400, "default target length in characters")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	defaults, err := buildRequest(nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file, defaults)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for i, result := range results {
		label := requestLabel(result.Request, i)
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, result.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(label)
		data, err := json.MarshalIndent(result.Result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: marshal result: %v\n", label, err)
			continue
		}
		if err := os.WriteFile(filepath.Join(outputDir, slug+".json"), data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", label, err)
			continue
		}
		if err := os.WriteFile(filepath.Join(outputDir, slug+".txt"), []byte(result.Result.Text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write text: %v\n", label, err)
			continue
		}

		if result.Result.Disclosure {
			fmt.Fprintf(os.Stderr, "○ %s (disclosure, %d facts)\n", label, len(result.Result.Facts))
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s (%d facts)\n", label, len(result.Result.Facts))
		}
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d requests\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)

	return nil
}

// requestLabel picks a human-readable identifier for one request.
func requestLabel(req model.DescribeRequest, index int) string {
	if req.Name != "" {
		return req.Name
	}
	if len(req.Sources) > 0 {
		return req.Sources[0]
	}
	return fmt.Sprintf("request-%d", index+1)
}

var filenameReplacer = strings.NewReplacer(
	"https://", "", "http://", "",
	"/", "_", "\\", "_", ":", "_",
	"*", "_", "?", "_", "\"", "_",
	"<", "_", ">", "_", "|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename.
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "result"
	}
	return s
}
