// Package extensions provides the per-extension file touch histogram and
// its per-language companion.
package extensions

import (
	"errors"
	"path"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/lru"
	"github.com/Sumatoshi-tech/gitstats/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// Export block keys.
const (
	BlockExtensions = "files_by_extension"
	BlockLanguages  = "files_by_language"
)

// ConfigSkipVendor is the fact key of the vendored-path filter.
const ConfigSkipVendor = "Extensions.SkipVendor"

// unknownLanguage labels files enry cannot classify.
const unknownLanguage = "Other"

// languageCacheSize bounds the base-name to language cache.
const languageCacheSize = 4096

// languageCache caches enry lookups by base name. Shared by forks.
var languageCache = lru.New(lru.WithMaxEntries[string, string](languageCacheSize))

// ErrInvalidSkipVendor is returned when the vendor filter fact is not a bool.
var ErrInvalidSkipVendor = errors.New("expected bool for " + ConfigSkipVendor)

// Aggregator counts file operations per extension. Every operation counts,
// so a commit touching two .go files adds 2 to "go".
type Aggregator struct {
	SkipVendor bool

	extensions map[string]int64
	languages  map[string]int64
}

// New creates an empty extension histogram.
func New() *Aggregator {
	return &Aggregator{
		extensions: map[string]int64{},
		languages:  map[string]int64{},
	}
}

// Name returns the name of the aggregator.
func (a *Aggregator) Name() string {
	return "Extensions"
}

// Flag returns the CLI flag for the aggregator.
func (a *Aggregator) Flag() string {
	return "extensions"
}

// Description returns a human-readable description of the aggregator.
func (a *Aggregator) Description() string {
	return "Number of file operations per file extension and per language."
}

// ListConfigurationOptions returns the configuration options for the aggregator.
func (a *Aggregator) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{{
		Name:        ConfigSkipVendor,
		Description: "Ignore vendored and generated paths (as classified by enry).",
		Flag:        "skip-vendor",
		Type:        pipeline.BoolConfigurationOption,
		Default:     false,
	}}
}

// Configure sets up the aggregator with the provided facts.
func (a *Aggregator) Configure(facts map[string]any) error {
	raw, exists := facts[ConfigSkipVendor]
	if !exists {
		return nil
	}

	val, ok := raw.(bool)
	if !ok {
		return ErrInvalidSkipVendor
	}

	a.SkipVendor = val

	return nil
}

// Consume counts every file operation of the commit.
func (a *Aggregator) Consume(c *commit.Record) {
	for i := range c.FileOperations {
		op := &c.FileOperations[i]

		if a.SkipVendor && enry.IsVendor(op.Path) {
			continue
		}

		a.extensions[op.Extension]++
		a.languages[language(op.Path)]++
	}
}

// LanguageCacheStats reports the hit statistics of the shared language cache.
func LanguageCacheStats() lru.Stats {
	return languageCache.Stats()
}

func language(filePath string) string {
	return languageCache.GetOrCompute(path.Base(filePath), classify)
}

func classify(base string) string {
	lang := enry.GetLanguage(base, nil)
	if lang == "" {
		return unknownLanguage
	}

	return lang
}

// Counts returns a copy of the extension histogram.
func (a *Aggregator) Counts() map[string]int64 {
	return mapx.Clone(a.extensions)
}

// ExportJSON returns the files_by_extension block.
func (a *Aggregator) ExportJSON() (report.JSONItem, error) {
	return report.NewJSONItem(BlockExtensions, nil, pairs(a.extensions))
}

// ExportLanguagesJSON returns the files_by_language block.
func (a *Aggregator) ExportLanguagesJSON() (report.JSONItem, error) {
	return report.NewJSONItem(BlockLanguages, nil, pairs(a.languages))
}

// Finalize appends both export blocks to the model.
func (a *Aggregator) Finalize(m *report.Model) error {
	item, err := a.ExportJSON()
	if err != nil {
		return err
	}

	m.AddJSON(item)

	item, err = a.ExportLanguagesJSON()
	if err != nil {
		return err
	}

	m.AddJSON(item)

	return nil
}

// pairs materializes a histogram ordered by name.
func pairs(counts map[string]int64) []report.NameValue {
	out := make([]report.NameValue, 0, len(counts))
	for _, name := range mapx.SortedKeys(counts) {
		out = append(out, report.NameValue{Name: name, Value: counts[name]})
	}

	return out
}

// SequentialOnly reports false.
func (a *Aggregator) SequentialOnly() bool { return false }

// Fork returns an empty aggregator with the same configuration.
func (a *Aggregator) Fork() analyze.Aggregator {
	fork := New()
	fork.SkipVendor = a.SkipVendor

	return fork
}

// Merge adds the histograms of other.
func (a *Aggregator) Merge(other analyze.Aggregator) {
	o, ok := other.(*Aggregator)
	if !ok {
		return
	}

	mapx.MergeAdditive(a.extensions, o.extensions)
	mapx.MergeAdditive(a.languages, o.languages)
}
