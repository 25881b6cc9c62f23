package analyze

import (
	"fmt"

	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
)

// Set is an ordered list of aggregators. Order is finalize order.
type Set struct {
	aggregators []Aggregator
}

// NewSet creates a set from aggregators in the given order.
func NewSet(aggregators ...Aggregator) *Set {
	s := &Set{}
	for _, agg := range aggregators {
		s.Add(agg)
	}

	return s
}

// Add appends an aggregator.
func (s *Set) Add(agg Aggregator) {
	s.aggregators = append(s.aggregators, agg)
}

// Aggregators returns the aggregators in order.
func (s *Set) Aggregators() []Aggregator {
	out := make([]Aggregator, len(s.aggregators))
	copy(out, s.aggregators)

	return out
}

// Len returns the number of aggregators.
func (s *Set) Len() int {
	return len(s.aggregators)
}

// Flags returns the aggregator flags in order.
func (s *Set) Flags() []string {
	flags := make([]string, len(s.aggregators))
	for i, agg := range s.aggregators {
		flags[i] = agg.Flag()
	}

	return flags
}

// ConfigurationOptions lists the options of every configurable aggregator.
func (s *Set) ConfigurationOptions() []pipeline.ConfigurationOption {
	var options []pipeline.ConfigurationOption

	for _, agg := range s.aggregators {
		if c, ok := agg.(Configurable); ok {
			options = append(options, c.ListConfigurationOptions()...)
		}
	}

	return options
}

// Configure passes facts to every configurable aggregator.
func (s *Set) Configure(facts map[string]any) error {
	for _, agg := range s.aggregators {
		c, ok := agg.(Configurable)
		if !ok {
			continue
		}

		err := c.Configure(facts)
		if err != nil {
			return fmt.Errorf("configure %s: %w", agg.Name(), err)
		}
	}

	return nil
}
