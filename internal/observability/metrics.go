package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
)

const (
	metricCommitsTotal = "gitstats.pipeline.commits.total"
	metricRunsTotal    = "gitstats.pipeline.runs.total"
	metricRunDuration  = "gitstats.pipeline.run.duration.seconds"

	attrMode = "mode"

	modeSequential = "sequential"
	modeParallel   = "parallel"
)

// durationBucketBoundaries covers 10ms to 600s.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// PipelineMetrics records aggregation runs. It implements [analyze.Recorder].
type PipelineMetrics struct {
	commits  metric.Int64Counter
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

var _ analyze.Recorder = (*PipelineMetrics)(nil)

// NewPipelineMetrics creates the pipeline instruments on mt.
func NewPipelineMetrics(mt metric.Meter) (*PipelineMetrics, error) {
	commits, commitsErr := mt.Int64Counter(metricCommitsTotal,
		metric.WithDescription("Commits consumed by the aggregation pipeline"),
		metric.WithUnit("{commit}"))

	runs, runsErr := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Completed aggregation runs"),
		metric.WithUnit("{run}"))

	duration, durationErr := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Aggregation run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...))

	err := errors.Join(commitsErr, runsErr, durationErr)
	if err != nil {
		return nil, fmt.Errorf("create pipeline instruments: %w", err)
	}

	return &PipelineMetrics{commits: commits, runs: runs, duration: duration}, nil
}

// RecordRun records one finished run.
func (pm *PipelineMetrics) RecordRun(ctx context.Context, stats analyze.RunStats) {
	mode := modeSequential
	if stats.Partitions > 1 {
		mode = modeParallel
	}

	attrs := metric.WithAttributes(attribute.String(attrMode, mode))

	pm.commits.Add(ctx, stats.Commits, attrs)
	pm.runs.Add(ctx, 1, attrs)
	pm.duration.Record(ctx, stats.Duration.Seconds(), attrs)
}
