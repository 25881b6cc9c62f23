package analyze

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

const tracerName = "gitstats/analyze"

// RunStats describes one completed pipeline run.
type RunStats struct {
	Commits     int64
	Aggregators int
	Partitions  int
	Duration    time.Duration
}

// Recorder receives run statistics. Implementations must be safe to call
// from the goroutine that invoked Run.
type Recorder interface {
	RecordRun(ctx context.Context, stats RunStats)
}

// Options configures the pipeline driver. The zero value is valid.
type Options struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Recorder Recorder
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	return o
}

// Run feeds every commit to every aggregator of the set in supplied order,
// then finalizes the aggregators in set order into a fresh model.
// The context is checked between commits.
func Run(ctx context.Context, commits iter.Seq[*commit.Record], set *Set, opts Options) (*report.Model, error) {
	opts = opts.withDefaults()
	start := time.Now()

	ctx, span := opts.Tracer.Start(ctx, "analyze.run",
		trace.WithAttributes(attribute.Int("gitstats.aggregators", set.Len())),
	)
	defer span.End()

	aggregators := set.Aggregators()

	var count int64

	for c := range commits {
		err := ctx.Err()
		if err != nil {
			return nil, failSpan(span, fmt.Errorf("consume: %w", err))
		}

		for _, agg := range aggregators {
			agg.Consume(c)
		}

		count++
	}

	return finish(ctx, span, aggregators, opts, RunStats{
		Commits:     count,
		Aggregators: len(aggregators),
		Partitions:  1,
		Duration:    time.Since(start),
	})
}

// RunParallel is the partitioned variant of Run. The history is split into
// up to workers contiguous partitions. Each parallelizable aggregator keeps
// the first partition and forks one copy per remaining partition; forks are
// merged back in partition order. Aggregators that are not parallelizable or
// report SequentialOnly consume the whole slice on the calling goroutine.
// The resulting model equals the one produced by Run.
func RunParallel(ctx context.Context, commits []*commit.Record, set *Set, workers int, opts Options) (*report.Model, error) {
	parts := partition(commits, workers)
	if len(parts) <= 1 {
		return Run(ctx, slices.Values(commits), set, opts)
	}

	opts = opts.withDefaults()
	start := time.Now()

	ctx, span := opts.Tracer.Start(ctx, "analyze.run_parallel",
		trace.WithAttributes(
			attribute.Int("gitstats.aggregators", set.Len()),
			attribute.Int("gitstats.partitions", len(parts)),
		),
	)
	defer span.End()

	aggregators := set.Aggregators()

	var (
		parallel   []Parallelizable
		sequential []Aggregator
	)

	for _, agg := range aggregators {
		p, ok := agg.(Parallelizable)
		if ok && !p.SequentialOnly() {
			parallel = append(parallel, p)

			continue
		}

		sequential = append(sequential, agg)
	}

	// branches[p][i] consumes partition p for parallel[i].
	branches := make([][]Aggregator, len(parts))
	for p := range parts {
		branches[p] = make([]Aggregator, len(parallel))

		for i, agg := range parallel {
			if p == 0 {
				branches[p][i] = agg.(Aggregator)

				continue
			}

			branches[p][i] = agg.Fork()
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	for p, part := range parts {
		g.Go(func() error {
			return consumeAll(gctx, part, branches[p])
		})
	}

	seqErr := consumeAll(ctx, commits, sequential)

	err := g.Wait()
	if err != nil {
		return nil, failSpan(span, err)
	}

	if seqErr != nil {
		return nil, failSpan(span, seqErr)
	}

	for p := 1; p < len(parts); p++ {
		for i, agg := range parallel {
			agg.Merge(branches[p][i])
		}
	}

	opts.Logger.DebugContext(ctx, "partitions merged",
		slog.Int("partitions", len(parts)),
		slog.Int("parallel", len(parallel)),
		slog.Int("sequential", len(sequential)))

	return finish(ctx, span, aggregators, opts, RunStats{
		Commits:     int64(len(commits)),
		Aggregators: len(aggregators),
		Partitions:  len(parts),
		Duration:    time.Since(start),
	})
}

func consumeAll(ctx context.Context, commits []*commit.Record, aggregators []Aggregator) error {
	if len(aggregators) == 0 {
		return nil
	}

	for _, c := range commits {
		err := ctx.Err()
		if err != nil {
			return fmt.Errorf("consume: %w", err)
		}

		for _, agg := range aggregators {
			agg.Consume(c)
		}
	}

	return nil
}

func finish(ctx context.Context, span trace.Span, aggregators []Aggregator, opts Options, stats RunStats) (*report.Model, error) {
	model := report.New()

	for _, agg := range aggregators {
		err := agg.Finalize(model)
		if err != nil {
			return nil, failSpan(span, fmt.Errorf("finalize %s: %w", agg.Name(), err))
		}
	}

	span.SetAttributes(attribute.Int64("gitstats.commits", stats.Commits))

	if opts.Recorder != nil {
		opts.Recorder.RecordRun(ctx, stats)
	}

	opts.Logger.InfoContext(ctx, "pipeline finished",
		slog.Int64("commits", stats.Commits),
		slog.Int("aggregators", stats.Aggregators),
		slog.Int("partitions", stats.Partitions),
		slog.Duration("duration", stats.Duration))

	return model, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

// partition splits commits into at most n contiguous, non-empty chunks of
// near-equal size.
func partition(commits []*commit.Record, n int) [][]*commit.Record {
	n = min(n, len(commits))
	if n <= 1 {
		return [][]*commit.Record{commits}
	}

	parts := make([][]*commit.Record, 0, n)
	size, rest := len(commits)/n, len(commits)%n
	offset := 0

	for i := range n {
		end := offset + size
		if i < rest {
			end++
		}

		parts = append(parts, commits[offset:end])
		offset = end
	}

	return parts
}
