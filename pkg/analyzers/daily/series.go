// Package daily provides aggregators keyed by calendar day: commits, line
// deltas and file operation deltas per day.
package daily

// series maps a day key to an accumulated metric.
type series[T any] struct {
	days map[string]*T
}

func newSeries[T any]() series[T] {
	return series[T]{days: map[string]*T{}}
}

// entry returns the metric for day, inserting a zero value when absent.
func (s series[T]) entry(day string) *T {
	v, ok := s.days[day]
	if !ok {
		v = new(T)
		s.days[day] = v
	}

	return v
}

// merge folds other into s with add.
func (s series[T]) merge(other series[T], add func(dst, src *T)) {
	for day, v := range other.days {
		add(s.entry(day), v)
	}
}

func (s series[T]) len() int {
	return len(s.days)
}
