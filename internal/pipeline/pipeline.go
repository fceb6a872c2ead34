package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fieldsift/fieldsift/internal/cache"
	"github.com/fieldsift/fieldsift/internal/extract"
	"github.com/fieldsift/fieldsift/internal/model"
	"github.com/fieldsift/fieldsift/internal/resolve"
	"github.com/fieldsift/fieldsift/internal/rules"
	"github.com/fieldsift/fieldsift/internal/textload"
	"github.com/fieldsift/fieldsift/internal/worker"
)

// Pipeline orchestrates loading documents, resolving every rule against
// each one, and assembling the batch result.
type Pipeline struct {
	loader   *textload.Loader
	resolver *resolve.Resolver
	rules    []*extract.CompiledRule
	config   *model.Config
	log      *logrus.Logger
}

// NewPipeline compiles the rule file and wires the document loader. Rule
// validation problems that are fatal abort construction; non-fatal ones are
// logged and the offending pieces dropped.
func NewPipeline(cfg *model.Config, ruleFile *rules.RuleFile, log *logrus.Logger) (*Pipeline, error) {
	if log == nil {
		log = logrus.New()
	}

	cfg.Settings = ruleFile.ApplySettings(cfg.Settings)

	report := rules.Validate(ruleFile.Rules)
	for _, p := range report.Problems {
		if p.Fatal {
			log.WithField("rule", p.RuleName).Error(p.Message)
		} else {
			log.WithField("rule", p.RuleName).Warn(p.Message)
		}
	}
	if report.Fatal() {
		return nil, fmt.Errorf("rule validation failed: %d problem(s)", len(report.Problems))
	}

	compiled, err := extract.CompileSet(report.Kept, cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	// Without a directory the disk layer would write relative to the working
	// directory; caching stays in-memory in that case.
	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		loader:   textload.NewLoader(c, log),
		resolver: resolve.NewResolver(*cfg),
		rules:    compiled,
		config:   cfg,
		log:      log,
	}, nil
}

// Rules returns the compiled rule set in declaration order
func (p *Pipeline) Rules() []*extract.CompiledRule {
	return p.rules
}

// BatchResult contains every record from a batch run plus its bookkeeping
type BatchResult struct {
	Records   []model.Record
	Documents int
	Skipped   []SkippedDocument
	StartedAt time.Time
	Elapsed   time.Duration
}

// SkippedDocument records a document that could not be loaded
type SkippedDocument struct {
	Path  string
	Error error
}

// EvaluateDocument loads one document and resolves every rule against it,
// producing one record per rule in rule order.
func (p *Pipeline) EvaluateDocument(ctx context.Context, path string) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	docID := filepath.Base(path)
	records := make([]model.Record, 0, len(p.rules))
	for _, rule := range p.rules {
		records = append(records, p.resolver.Resolve(docID, text, rule))
	}
	return records, nil
}

// Run evaluates every rule against every document. Documents that fail to
// load are skipped and reported; they contribute no records. Record order
// is documents outer, rules inner, both in their given order.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{StartedAt: start}

	workers := p.config.Concurrency.Workers
	if workers <= 1 || len(paths) <= 1 {
		for _, path := range paths {
			records, err := p.EvaluateDocument(ctx, path)
			if err != nil {
				p.log.WithError(err).WithField("path", path).Warn("skipping document")
				result.Skipped = append(result.Skipped, SkippedDocument{Path: path, Error: err})
				continue
			}
			result.Records = append(result.Records, records...)
			result.Documents++
		}
	} else {
		processor := worker.NewBatchProcessor(p, workers)
		for _, r := range processor.ProcessDocuments(ctx, paths) {
			if r.Error != nil {
				p.log.WithError(r.Error).WithField("path", r.Path).Warn("skipping document")
				result.Skipped = append(result.Skipped, SkippedDocument{Path: r.Path, Error: r.Error})
				continue
			}
			result.Records = append(result.Records, r.Records...)
			result.Documents++
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}
