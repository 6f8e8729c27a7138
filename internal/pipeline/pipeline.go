// Package pipeline orchestrates one generation request end to end:
// fetch sources, extract and merge facts, scope, gate, generate, ground,
// sanitize, and enforce completeness.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ymiyake/bukkengen/internal/cache"
	"github.com/ymiyake/bukkengen/internal/extract"
	"github.com/ymiyake/bukkengen/internal/gate"
	"github.com/ymiyake/bukkengen/internal/ground"
	"github.com/ymiyake/bukkengen/internal/llm"
	"github.com/ymiyake/bukkengen/internal/merge"
	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/sanitize"
	"github.com/ymiyake/bukkengen/internal/scope"
)

// Pipeline wires the full extract→merge→constrain→validate flow. Stateless
// across requests; the only shared state is the read-only schema tables and
// the page cache.
type Pipeline struct {
	fetcher   *Fetcher
	extractor *extract.Extractor
	provider  llm.Provider
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var pages cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.DiskDir != "" {
			pages = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.DiskDir, cfg.Cache.DiskTTL)
		} else {
			pages = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP, cfg.RateLimit, pages, cfg.Cache.MemoryTTL),
		extractor: extract.NewExtractor(),
		provider:  provider,
		config:    cfg,
	}
}

// NewPipelineWithProvider creates a pipeline with an explicit provider.
// Used by tests to inject a fake text service.
func NewPipelineWithProvider(cfg *model.Config, provider llm.Provider) *Pipeline {
	p := NewPipeline(cfg)
	p.provider = provider
	return p
}

// Describe runs one generation request. The caller always gets either a
// successful result (possibly the disclosure output) or an explicit error;
// never partially grounded text.
func (p *Pipeline) Describe(ctx context.Context, req model.DescribeRequest) (*model.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	// Gather facts: concurrent per-source fetch, sequential merge,
	// manual facts last.
	documents := p.fetcher.FetchAll(ctx, req.Sources)
	sets := make([]model.FactSet, 0, len(documents))
	for _, doc := range documents {
		sets = append(sets, p.extractor.Extract(doc).Facts)
	}
	facts := merge.MergeAll(sets...)
	facts = merge.ApplyManual(facts, req.Name, req.ExtraFacts)

	scoped := scope.FilterFacts(facts, req.Scope)

	minFacts := p.config.Generation.MinFacts
	if !gate.HasEnoughEvidence(scoped, minFacts) {
		return p.disclosureResult(scoped, req.Scope, minFacts), nil
	}

	if p.provider == nil {
		// No text service configured: disclose what we know instead of
		// inventing prose.
		return p.disclosureResult(scoped, req.Scope, minFacts), nil
	}

	prompt := llm.BuildPrompt(llm.PromptInput{
		Facts:        scoped,
		Scope:        req.Scope,
		Tone:         req.Tone,
		TargetLength: req.TargetLength,
		MustInclude:  req.MustInclude,
		Structured:   !req.FreeText,
	})

	resp, err := p.provider.Generate(ctx, llm.GenerateRequest{
		System:     llm.SystemPrompt,
		Prompt:     prompt,
		Structured: !req.FreeText,
		MaxTokens:  p.config.LLM.MaxTokens,
	})
	if err != nil {
		// No retry: a text-service failure is a request error.
		return nil, fmt.Errorf("text generation: %w", err)
	}

	meta := &model.LLMMeta{
		Provider:   p.provider.Name(),
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
	}

	var text string
	if req.FreeText {
		text = p.finishFreeText(resp.Content, scoped, req)
	} else {
		text, err = p.finishStructured(resp.Content, scoped, req)
		if err != nil {
			// Total grounding failure is equivalent to insufficient
			// evidence for output purposes.
			result := p.disclosureResult(scoped, req.Scope, minFacts)
			result.LLM = meta
			return result, nil
		}
	}

	return &model.Result{
		Text:        text,
		Facts:       scoped.Flat(),
		Scope:       req.Scope,
		GeneratedAt: time.Now().UTC(),
		LLM:         meta,
	}, nil
}

// finishStructured validates the structured draft sentence by sentence,
// re-applies the scope filter to the survivors, and runs the sanitation and
// completeness passes. An empty survivor set at any point is total failure.
func (p *Pipeline) finishStructured(raw string, facts model.FactSet, req model.DescribeRequest) (string, error) {
	validator := ground.NewValidator(facts)
	sentences, err := validator.Validate(raw)
	if err != nil {
		if errors.Is(err, ground.ErrNothingGrounded) {
			return "", err
		}
		// Malformed payload: recovered locally as total failure.
		return "", ground.ErrNothingGrounded
	}

	// Defense in depth: grounding already limits sentences to scoped
	// facts, but a sentence can still mention unit vocabulary in passing.
	sentences = scope.FilterSentences(sentences, req.Scope)
	if len(sentences) == 0 {
		return "", ground.ErrNothingGrounded
	}

	text := ground.JoinSentences(sentences)
	text = sanitize.Sanitize(text)
	text = sanitize.EnforceCompleteness(text, facts, req.MustInclude, req.Scope)
	return text, nil
}

// finishFreeText is the legacy path: no per-sentence verification, just the
// scope text filter and the sanitation passes.
func (p *Pipeline) finishFreeText(raw string, facts model.FactSet, req model.DescribeRequest) string {
	text := scope.FilterText(raw, req.Scope)
	text = sanitize.StripHedges(text)
	text = sanitize.Sanitize(text)
	text = sanitize.EnforceCompleteness(text, facts, req.MustInclude, req.Scope)
	return text
}

// disclosureResult wraps the fixed disclosure output.
func (p *Pipeline) disclosureResult(facts model.FactSet, s model.Scope, minFacts int) *model.Result {
	return &model.Result{
		Text:        gate.Disclosure(facts, s, minFacts),
		Facts:       facts.Flat(),
		Disclosure:  true,
		Scope:       s,
		GeneratedAt: time.Now().UTC(),
	}
}
