package worker

import (
	"context"
	"sync"

	"github.com/fieldsift/fieldsift/internal/model"
)

// Evaluator defines the interface for evaluating one document
type Evaluator interface {
	EvaluateDocument(ctx context.Context, path string) ([]model.Record, error)
}

// EvalResult represents the outcome of evaluating one document
type EvalResult struct {
	Path    string
	Records []model.Record
	Error   error
}

// BatchProcessor evaluates multiple documents concurrently
type BatchProcessor struct {
	evaluator  Evaluator
	maxWorkers int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(evaluator Evaluator, maxWorkers int) *BatchProcessor {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &BatchProcessor{
		evaluator:  evaluator,
		maxWorkers: maxWorkers,
	}
}

// ProcessDocuments evaluates all documents concurrently. Results land in a
// slice indexed by the document's position in paths, so the batch order is
// deterministic regardless of which worker finishes first.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, paths []string) []*EvalResult {
	if len(paths) == 0 {
		return []*EvalResult{}
	}

	results := make([]*EvalResult, len(paths))
	var wg sync.WaitGroup

	// Semaphore to limit concurrent evaluations
	semaphore := make(chan struct{}, b.maxWorkers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = &EvalResult{Path: p, Error: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			records, err := b.evaluator.EvaluateDocument(ctx, p)
			results[idx] = &EvalResult{Path: p, Records: records, Error: err}
		}(i, path)
	}

	wg.Wait()

	return results
}
