package analyze

import (
	"errors"
	"fmt"
	pathpkg "path"
	"strings"
)

// ErrUnknownAggregator is returned when a selector matches no registered aggregator.
var ErrUnknownAggregator = errors.New("unknown aggregator")

// ErrDuplicateAggregator is returned when two registrations share a flag.
var ErrDuplicateAggregator = errors.New("duplicate aggregator flag")

// ErrInvalidAggregatorGlob is returned when a glob pattern is malformed.
var ErrInvalidAggregatorGlob = errors.New("invalid aggregator glob")

// Factory creates a fresh aggregator.
type Factory func() Aggregator

// Registration binds a factory to its default-set membership.
type Registration struct {
	Factory Factory
	Default bool
}

// Descriptor contains stable aggregator metadata.
type Descriptor struct {
	Flag        string
	Name        string
	Description string
	Default     bool
}

// Registry stores aggregator factories with deterministic ordering.
// Registration order is the canonical finalize order.
type Registry struct {
	ordered   []Descriptor
	factories map[string]Factory
}

// NewRegistry creates a registry from registrations in canonical order.
func NewRegistry(registrations ...Registration) (*Registry, error) {
	r := &Registry{
		ordered:   make([]Descriptor, 0, len(registrations)),
		factories: make(map[string]Factory, len(registrations)),
	}

	for _, reg := range registrations {
		agg := reg.Factory()
		flag := agg.Flag()

		if _, exists := r.factories[flag]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAggregator, flag)
		}

		r.factories[flag] = reg.Factory
		r.ordered = append(r.ordered, Descriptor{
			Flag:        flag,
			Name:        agg.Name(),
			Description: agg.Description(),
			Default:     reg.Default,
		})
	}

	return r, nil
}

// All returns all descriptors in canonical order.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, len(r.ordered))
	copy(descriptors, r.ordered)

	return descriptors
}

// Descriptor returns metadata for the given flag.
func (r *Registry) Descriptor(flag string) (Descriptor, bool) {
	for _, d := range r.ordered {
		if d.Flag == flag {
			return d, true
		}
	}

	return Descriptor{}, false
}

// Defaults builds a set of the default aggregators in canonical order.
func (r *Registry) Defaults() *Set {
	set := NewSet()

	for _, d := range r.ordered {
		if d.Default {
			set.Add(r.factories[d.Flag]())
		}
	}

	return set
}

// DefaultSelector is the pattern that expands to every default aggregator.
const DefaultSelector = "default"

// Select builds a set from flags and glob patterns. The result keeps
// canonical order regardless of the order of patterns. An empty pattern
// list selects the defaults.
func (r *Registry) Select(patterns []string) (*Set, error) {
	if len(patterns) == 0 {
		return r.Defaults(), nil
	}

	selected := make(map[string]struct{}, len(r.ordered))

	for _, raw := range patterns {
		flags, err := r.resolvePattern(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}

		for _, flag := range flags {
			selected[flag] = struct{}{}
		}
	}

	set := NewSet()

	for _, d := range r.ordered {
		if _, ok := selected[d.Flag]; ok {
			set.Add(r.factories[d.Flag]())
		}
	}

	return set, nil
}

func (r *Registry) resolvePattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrUnknownAggregator)
	}

	if pattern == DefaultSelector {
		return r.defaultFlags(), nil
	}

	if !hasGlobMeta(pattern) {
		if _, exists := r.factories[pattern]; !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAggregator, pattern)
		}

		return []string{pattern}, nil
	}

	matched := make([]string, 0, len(r.ordered))

	for _, d := range r.ordered {
		isMatch, err := pathpkg.Match(pattern, d.Flag)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidAggregatorGlob, pattern, err)
		}

		if isMatch {
			matched = append(matched, d.Flag)
		}
	}

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAggregator, pattern)
	}

	return matched, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func (r *Registry) defaultFlags() []string {
	flags := make([]string, 0, len(r.ordered))

	for _, d := range r.ordered {
		if d.Default {
			flags = append(flags, d.Flag)
		}
	}

	return flags
}
