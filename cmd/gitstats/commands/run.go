// Package commands implements CLI command handlers for gitstats.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitstats/internal/config"
	"github.com/Sumatoshi-tech/gitstats/internal/observability"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/builtin"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/cochange"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/extensions"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
	"github.com/Sumatoshi-tech/gitstats/pkg/version"
)

const (
	// stdoutPath selects standard output for --export.
	stdoutPath = "-"

	exportFileMode = 0o644
)

var (
	// ErrNoAggregatorsSelected is returned when the selection is empty.
	ErrNoAggregatorsSelected = errors.New("no aggregators selected")
	// ErrRepositoryLoad indicates a failure to open or walk the repository.
	ErrRepositoryLoad = errors.New("failed to load repository")
)

// recordLoader produces the commit records of the repository at path.
type recordLoader func(ctx context.Context, path string, opts gitlib.LogOptions) ([]*commit.Record, error)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	format      string
	export      string
	aggregators []string
	workers     int
	limit       int
	since       string
	firstParent bool
	newestFirst bool
	cochange    bool
	metricsFile string
	configPath  string
	noColor     bool

	registry *analyze.Registry
	load     recordLoader
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(builtin.Registry(), loadRecords)
}

func newRunCommandWithDeps(registry *analyze.Registry, load recordLoader) *cobra.Command {
	rc := &RunCommand{
		registry: registry,
		load:     load,
	}

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Aggregate the commit history of a repository",
		Long: `Walk the history reachable from HEAD and print commit statistics.

Examples:
  gitstats run
  gitstats run ../repo --format plot > stats.html
  gitstats run --aggregators summary,'*-by-day' --since 2024-01-01
  gitstats run --export stats.json --metrics-file gitstats.prom`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.format, "format", config.DefaultFormat, "Output format: text, json, yaml, plot")
	cmd.Flags().StringVar(&rc.export, "export", "", "Write the JSON export blocks to this file ('-' for stdout)")
	cmd.Flags().StringSliceVarP(&rc.aggregators, "aggregators", "a", nil,
		"Aggregator flags or glob patterns (example: summary,*-by-day,default)")
	cmd.Flags().IntVar(&rc.workers, "workers", config.DefaultWorkers, "Parallel aggregation workers (0 or 1 = sequential)")
	cmd.Flags().IntVar(&rc.limit, "limit", 0, "Limit number of commits to analyze (0 = no limit)")
	cmd.Flags().StringVar(&rc.since, "since", "", "Only analyze commits at or after this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().BoolVar(&rc.firstParent, "first-parent", false, "Follow only the first parent of merge commits")
	cmd.Flags().BoolVar(&rc.newestFirst, "newest-first", false, "Feed commits newest first instead of oldest first")
	cmd.Flags().BoolVar(&rc.cochange, "cochange", false, "Enable the co-change detector")
	cmd.Flags().StringVar(&rc.metricsFile, "metrics-file", "", "Write pipeline metrics in Prometheus text format to this file")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file (default: .gitstats.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored text output")

	registerAggregatorFlags(cmd, registry)

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	rc.mergeConfig(cmd, cfg)

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	providers, err := observability.Init(rc.observabilityConfig(cmd, cfg))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown", slog.Any("error", shutdownErr))
		}
	}()

	set, err := rc.buildSet(cmd, cfg)
	if err != nil {
		return err
	}

	path := resolvePath(args)
	logger := providers.Logger.With(slog.String("path", path))

	since, err := cfg.Since()
	if err != nil {
		return err
	}

	records, err := rc.load(ctx, path, gitlib.LogOptions{
		Since:       since,
		Limit:       cfg.History.Limit,
		FirstParent: cfg.History.FirstParent,
		NewestFirst: cfg.History.NewestFirst,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRepositoryLoad, err)
	}

	logger.InfoContext(ctx, "history loaded",
		slog.Int("commits", len(records)),
		slog.Any("aggregators", set.Flags()))

	metrics, err := observability.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	opts := analyze.Options{Logger: logger, Tracer: providers.Tracer, Recorder: metrics}

	model, err := runPipeline(ctx, records, set, cfg.Pipeline.Workers, opts)
	if err != nil {
		return err
	}

	cacheStats := extensions.LanguageCacheStats()
	logger.DebugContext(ctx, "language cache",
		slog.Int64("hits", cacheStats.Hits),
		slog.Int64("misses", cacheStats.Misses),
		slog.Int("entries", cacheStats.Entries),
		slog.Float64("hit_rate", cacheStats.HitRate()))

	err = rc.writeReport(model, cfg.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = rc.writeExport(set, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.Output.MetricsFile != "" {
		err = providers.WriteTextfile(cfg.Output.MetricsFile)
		if err != nil {
			return err
		}
	}

	return nil
}

// mergeConfig overrides config values with explicitly set flags.
func (rc *RunCommand) mergeConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = rc.format
	}

	if flags.Changed("aggregators") {
		cfg.Aggregators = rc.aggregators
	}

	if flags.Changed("workers") {
		cfg.Pipeline.Workers = rc.workers
	}

	if flags.Changed("limit") {
		cfg.History.Limit = rc.limit
	}

	if flags.Changed("since") {
		cfg.History.Since = rc.since
	}

	if flags.Changed("first-parent") {
		cfg.History.FirstParent = rc.firstParent
	}

	if flags.Changed("newest-first") {
		cfg.History.NewestFirst = rc.newestFirst
	}

	if flags.Changed("cochange") {
		cfg.CoChange.Enabled = rc.cochange
	}

	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = rc.metricsFile
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = config.DefaultFormat
	}
}

func (rc *RunCommand) observabilityConfig(cmd *cobra.Command, cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.Prometheus = cfg.Output.MetricsFile != ""
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogOutput = cmd.ErrOrStderr()

	if boolFlag(cmd, "verbose") {
		obsCfg.LogLevel = slog.LevelDebug
	}

	if boolFlag(cmd, "quiet") {
		obsCfg.LogLevel = slog.LevelError
	}

	return obsCfg
}

func (rc *RunCommand) buildSet(cmd *cobra.Command, cfg *config.Config) (*analyze.Set, error) {
	set, err := rc.registry.Select(cfg.AggregatorPatterns(cochange.AggregatorFlag))
	if err != nil {
		return nil, err
	}

	if set.Len() == 0 {
		return nil, ErrNoAggregatorsSelected
	}

	facts := pipeline.Defaults(set.ConfigurationOptions())
	cfg.ApplyToFacts(facts)
	applyFlagFacts(cmd, set.ConfigurationOptions(), facts)

	err = set.Configure(facts)
	if err != nil {
		return nil, err
	}

	return set, nil
}

func runPipeline(
	ctx context.Context, records []*commit.Record, set *analyze.Set, workers int, opts analyze.Options,
) (*report.Model, error) {
	if workers > 1 {
		return analyze.RunParallel(ctx, records, set, workers, opts)
	}

	return analyze.Run(ctx, slices.Values(records), set, opts)
}

func (rc *RunCommand) writeReport(model *report.Model, format string, writer io.Writer) error {
	format, err := report.NormalizeFormat(format)
	if err != nil {
		return err
	}

	if format == report.FormatText {
		return report.WriteText(model, writer, report.TextOptions{NoColor: rc.noColor})
	}

	return report.Write(model, format, writer)
}

func (rc *RunCommand) writeExport(set *analyze.Set, stdout io.Writer) error {
	if rc.export == "" {
		return nil
	}

	items, err := analyze.ExportJSON(set)
	if err != nil {
		return err
	}

	if rc.export == stdoutPath {
		return report.WriteExport(items, stdout)
	}

	// The file is only created once the document passed validation.
	data, err := report.MarshalExport(items)
	if err != nil {
		return err
	}

	err = os.WriteFile(rc.export, data, exportFileMode)
	if err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	return nil
}

func resolvePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return "."
}

func boolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}

	return value
}

func loadRecords(ctx context.Context, path string, opts gitlib.LogOptions) ([]*commit.Record, error) {
	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, err
	}
	defer repo.Free()

	return repo.Records(ctx, opts)
}
