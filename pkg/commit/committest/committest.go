// Package committest provides commit record fixtures for aggregator tests.
package committest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
)

// Day1, Day2 and Day3 are the dates of the three-commit scenario.
var (
	Day1 = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	Day2 = time.Date(2024, time.January, 2, 11, 30, 0, 0, time.UTC)
	Day3 = time.Date(2024, time.January, 3, 18, 45, 0, 0, time.UTC)
)

// Scenario returns the Alice/Bob/Carl history: 3 commits, +15/-5 lines,
// four .rs file operations.
func Scenario() []*commit.Record {
	return []*commit.Record{
		{
			Hash: "c1", Author: "Alice", When: Day1, Message: "init\n",
			LineChanges:    []commit.LineChange{{Added: 10}},
			FileOperations: []commit.FileOperation{Op("a.rs", commit.OpAdded)},
		},
		{
			Hash: "c2", Author: "Bob", When: Day2, Message: "extend\n\nadd b\n",
			LineChanges: []commit.LineChange{{Added: 3, Deleted: 2}, {Added: 2}},
			FileOperations: []commit.FileOperation{
				Op("a.rs", commit.OpModified),
				Op("b.rs", commit.OpAdded),
			},
		},
		{
			Hash: "c3", Author: "Carl", When: Day3, Message: "drop b",
			LineChanges:    []commit.LineChange{{Deleted: 3}},
			FileOperations: []commit.FileOperation{Op("b.rs", commit.OpDeleted)},
		},
	}
}

// Op builds a file operation with the extension derived from the path.
func Op(path string, kind commit.OpKind) commit.FileOperation {
	return commit.FileOperation{Path: path, Extension: commit.ExtensionOf(path), Kind: kind}
}

var (
	randomAuthors = []string{"alice", "bob", "carl", "dana"}
	randomPaths   = []string{"main.go", "go.mod", "README.md", "lib/a.rs", "lib/b.rs", "Makefile", "web/app.ts", ".gitignore"}
	randomZones   = []*time.Location{time.UTC, time.FixedZone("PST", -8*3600), time.FixedZone("JST", 9*3600)}
)

// Random returns n deterministic pseudo-random records spanning several
// weeks and time zones, in no particular date order.
func Random(seed uint64, n int) []*commit.Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := make([]*commit.Record, 0, n)

	for i := range n {
		when := base.Add(time.Duration(rng.IntN(60*24)) * time.Hour).In(randomZones[rng.IntN(len(randomZones))])

		rec := &commit.Record{
			Hash:    fmt.Sprintf("%040x", i),
			Author:  randomAuthors[rng.IntN(len(randomAuthors))],
			When:    when,
			Message: randomMessage(rng),
		}

		for range rng.IntN(5) {
			rec.LineChanges = append(rec.LineChanges, commit.LineChange{
				Added:   rng.Int64N(200),
				Deleted: rng.Int64N(100),
			})
			rec.FileOperations = append(rec.FileOperations,
				Op(randomPaths[rng.IntN(len(randomPaths))], commit.OpKind(rng.IntN(4))))
		}

		records = append(records, rec)
	}

	return records
}

func randomMessage(rng *rand.Rand) string {
	lines := rng.IntN(4)
	msg := ""

	for i := range lines {
		if i > 0 {
			msg += "\n"
		}

		msg += fmt.Sprintf("line %d of change", rng.IntN(1000))
	}

	return msg
}
