package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBatchSize is the number of items per batch.
	DefaultBatchSize = 10

	// MinBatchSize is the smallest allowed batch.
	MinBatchSize = 1

	// MaxBatchSize is the largest allowed batch.
	MaxBatchSize = 1000
)

var (
	ErrInvalidBatchSize = fmt.Errorf("batch size must be between %d and %d", MinBatchSize, MaxBatchSize)
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// Callback handles one batch. batchIndex is 0-based and offset is the index of
// batch[0] within the full slice.
type Callback[T any] func(ctx context.Context, batch []T, batchIndex, offset int) error

// ProgressFunc is called after each finished batch with a snapshot.
type ProgressFunc func(Snapshot)

// Processor splits a slice into batches.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressFunc
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults returns a processor using DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgress sets the progress callback. It may be called concurrently when
// batches run concurrently.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int { return p.batchSize }

// Process runs batches in order and stops at the first error.
// An empty slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if callback == nil {
		return ErrNilCallback
	}
	bounds := p.Batches(len(items))
	progress := NewProgress(len(items), len(bounds))

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, items[b[0]:b[1]], i, b[0]); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}
		p.report(progress, b[1]-b[0])
	}
	return nil
}

// ProcessConcurrent runs up to maxConcurrency batches at once. The first error
// cancels the context passed to the remaining batches and is returned.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if callback == nil {
		return ErrNilCallback
	}
	bounds := p.Batches(len(items))
	progress := NewProgress(len(items), len(bounds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(maxConcurrency, 1))

	for i, b := range bounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, items[b[0]:b[1]], i, b[0]); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			p.report(progress, b[1]-b[0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies fn to every item, up to maxConcurrency batches at a time, and
// returns the results in input order.
func Map[T, R any](
	ctx context.Context,
	p *Processor[T],
	items []T,
	maxConcurrency int,
	fn func(ctx context.Context, item T) (R, error),
) ([]R, error) {
	out := make([]R, len(items))
	err := p.ProcessConcurrent(ctx, items, func(ctx context.Context, batch []T, _, offset int) error {
		for i, item := range batch {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			out[offset+i] = r
		}
		return nil
	}, maxConcurrency)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Batches returns the [start, end) bounds of every batch for n items.
func (p *Processor[T]) Batches(n int) [][2]int {
	bounds := make([][2]int, 0, (n+p.batchSize-1)/p.batchSize)
	for start := 0; start < n; start += p.batchSize {
		bounds = append(bounds, [2]int{start, min(start+p.batchSize, n)})
	}
	return bounds
}

func (p *Processor[T]) report(progress *Progress, n int) {
	snap := progress.Add(n)
	if p.onProgress != nil {
		p.onProgress(snap)
	}
}
