package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/noisepop/internal/cache"
	"github.com/ppiankov/noisepop/internal/clean"
	"github.com/ppiankov/noisepop/internal/dataset"
	"github.com/ppiankov/noisepop/internal/model"
	"github.com/ppiankov/noisepop/internal/summary"
)

// Pipeline runs fetch → clean → summarize → render once per call
type Pipeline struct {
	fetcher  *Fetcher
	builder  *dataset.Builder
	engine   *summary.Engine
	renderer *Renderer
	comma    rune
	logger   *zap.Logger
}

// NewPipeline wires the stages from cfg
func NewPipeline(cfg *model.Config, logger *zap.Logger, out io.Writer) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	comma, err := dataset.ParseComma(cfg.Source.Comma)
	if err != nil {
		return nil, fmt.Errorf("source.comma: %w", err)
	}

	cleaner := clean.NewCleaner(cfg.Columns)
	return &Pipeline{
		fetcher:  NewFetcher(cfg.HTTP, cache.New(cfg.Cache), cfg.Cache.TTL, logger),
		builder:  dataset.NewBuilder(cleaner, logger),
		engine:   summary.NewEngine(cfg.Columns),
		renderer: NewRenderer(out, cfg.Output.IncludeFooter),
		comma:    comma,
		logger:   logger,
	}, nil
}

// Run fetches the dataset at url and returns its summary report
func (p *Pipeline) Run(ctx context.Context, url string) (*model.Report, error) {
	// 1. Fetch
	fetched, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Clean & parse
	ds, err := p.builder.Build(dataset.ReadCSV(bytes.NewReader(fetched.Body), p.comma))
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	p.logger.Info("Dataset ready", zap.Int("rows", ds.Len()), zap.Int("columns", len(ds.Columns())))

	// 3. Summarize
	s, err := p.engine.Summarize(ds)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &model.Report{
		SourceURL: fetched.FinalURL,
		FetchedAt: time.Now().UTC(),
		FetchMeta: fetched.Meta,
		Summary:   s,
		Narrative: summary.Narrative(s),
	}, nil
}

// RenderReport writes the requested files and prints the narrative
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, showRecords, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			p.renderer.Notef("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			p.renderer.Notef("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if showRecords {
		if err := p.renderer.RenderRecords(report); err != nil {
			return fmt.Errorf("render records: %w", err)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
