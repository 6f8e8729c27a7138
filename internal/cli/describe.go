package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/pipeline"
)

var (
	scopeFlag    string
	toneFlag     string
	lengthFlag   int
	nameFlag     string
	factsFile    string
	factsInline  string
	mustInclude  []string
	outJSON      string
	freeText     bool
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noRobots     bool
	llmProvider  string
	llmModel     string
	llmMaxTokens int
	httpProxy    string
	httpsProxy   string
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [url...]",
	Short: "Generate a grounded description from listing pages",
	Long: `Describe fetches up to 3 listing pages, extracts a canonical fact set,
and generates a marketing description where every sentence is backed by
an extracted fact.

Sources can be combined with operator-supplied facts:
  bukkengen describe https://example.jp/bukken/123
  bukkengen describe https://a.example/1 https://b.example/1 --scope unit
  bukkengen describe --name "パークハイツ青葉台" --facts facts.txt
  bukkengen describe https://example.jp/123 --must year-built --must location

The facts file holds one "label: value" pair per line (ASCII or full-width
colon). Without an LLM provider configured, the command prints the
disclosure output listing the facts it found.`,
	Args: cobra.MaximumNArgs(model.MaxSources),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	// Request flags
	describeCmd.Flags().StringVar(&scopeFlag, "scope", "building", "presentation scope (unit, building)")
	describeCmd.Flags().StringVar(&toneFlag, "tone", "neutral", "tone (formal, neutral, friendly)")
	describeCmd.Flags().IntVar(&lengthFlag, "length", 400, "target length in characters")
	describeCmd.Flags().StringVar(&nameFlag, "name", "", "property name (overrides extracted name)")
	describeCmd.Flags().StringVar(&factsFile, "facts", "", "file of extra label:value facts, one per line")
	describeCmd.Flags().StringVar(&factsInline, "fact", "", "inline extra facts, lines separated by ';'")
	describeCmd.Flags().StringArrayVar(&mustInclude, "must", nil, "fact key that must appear in the output (repeatable)")
	describeCmd.Flags().BoolVar(&freeText, "free-text", false, "legacy free-text output shape (no per-sentence grounding)")

	// Output flags
	describeCmd.Flags().StringVar(&outJSON, "json", "", "write the result as JSON to this path")

	// HTTP flags
	describeCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-source fetch timeout")
	describeCmd.Flags().StringVar(&userAgent, "ua", "bukkengen/0.1 (+https://github.com/ymiyake/bukkengen)", "HTTP User-Agent")
	describeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	describeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetch)")
	describeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	describeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	describeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	describeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	describeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	describeCmd.Flags().IntVar(&llmMaxTokens, "llm-max-tokens", 1200, "max tokens for the generation call")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Sources: %d\n", len(req.Sources))
		fmt.Fprintf(os.Stderr, "Scope:   %s\n", req.Scope)
		fmt.Fprintf(os.Stderr, "Tone:    %s\n", req.Tone)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.Describe(ctx, req)
	if err != nil {
		return fmt.Errorf("describe failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Known facts: %d\n", len(result.Facts))
		if result.Disclosure {
			fmt.Fprintf(os.Stderr, "✓ Generation withheld (disclosure output)\n")
		} else if result.LLM != nil {
			fmt.Fprintf(os.Stderr, "✓ Generated with %s/%s\n", result.LLM.Provider, result.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(result.Text)

	if outJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

// buildConfig assembles configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.MaxTokens = llmMaxTokens

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	case "none", "":
		cfg.LLM.Provider = ""
	}

	return cfg, nil
}

// buildRequest assembles the generation request from args and flags.
func buildRequest(urls []string) (model.DescribeRequest, error) {
	extra := ""
	if factsFile != "" {
		data, err := os.ReadFile(factsFile)
		if err != nil {
			return model.DescribeRequest{}, fmt.Errorf("read facts file: %w", err)
		}
		extra = string(data)
	}
	if factsInline != "" {
		if extra != "" {
			extra += "\n"
		}
		extra += strings.ReplaceAll(factsInline, ";", "\n")
	}

	var must []model.FactKey
	for _, key := range mustInclude {
		must = append(must, model.FactKey(strings.TrimSpace(key)))
	}

	return model.DescribeRequest{
		Sources:      urls,
		Name:         nameFlag,
		ExtraFacts:   extra,
		Scope:        model.Scope(scopeFlag),
		Tone:         model.Tone(toneFlag),
		TargetLength: lengthFlag,
		MustInclude:  must,
		FreeText:     freeText,
	}, nil
}
