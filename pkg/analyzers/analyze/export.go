package analyze

import (
	"fmt"

	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// ExportJSON collects the export blocks of every JSONExporter in the set,
// in set order. Exporting never changes aggregator state.
func ExportJSON(set *Set) ([]report.JSONItem, error) {
	items := make([]report.JSONItem, 0, set.Len())

	for _, agg := range set.Aggregators() {
		exporter, ok := agg.(JSONExporter)
		if !ok {
			continue
		}

		item, err := exporter.ExportJSON()
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", agg.Name(), err)
		}

		items = append(items, item)
	}

	return items, nil
}
