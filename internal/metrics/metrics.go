// Package metrics derives aggregate figures from validated reports.
// Pure functions over report data; no I/O.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/contract"
)

// HistoryEntry is one stored report plus the bookkeeping the caller attaches:
// the originating requirements-document name and the creation time.
type HistoryEntry struct {
	Report     contract.Report
	SourceName string
	CreatedAt  time.Time
}

// Group is the ranked report history for one source document.
type Group struct {
	Source  string
	Entries []HistoryEntry
}

// CompliancePercentage scales the findings' scores to 0-100 with one decimal
// place. Each finding contributes at most 1; zero findings yield 0. A finding
// whose score was absent in the stored payload decodes as 0 and contributes 0.
// The typed parameter keeps this metric undefined for extraction reports.
func CompliancePercentage(r *contract.ComplianceReport) float64 {
	if r == nil || len(r.Findings) == 0 {
		return 0
	}
	var sum float64
	for _, f := range r.Findings {
		sum += f.ComplianceScore
	}
	pct := 100 * sum / float64(len(r.Findings))
	return math.Round(pct*10) / 10
}

// GroupAndRank groups history entries by source document and orders each
// group by descending score. Extraction reports are unscored and rank as
// maximal; equal scores break on CreatedAt descending. Groups come back in
// lexicographic source order so output is deterministic.
func GroupAndRank(entries []HistoryEntry) []Group {
	bySource := make(map[string][]HistoryEntry)
	for _, e := range entries {
		bySource[e.SourceName] = append(bySource[e.SourceName], e)
	}

	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	groups := make([]Group, 0, len(sources))
	for _, s := range sources {
		group := bySource[s]
		sort.SliceStable(group, func(i, j int) bool {
			return rankBefore(group[i], group[j])
		})
		groups = append(groups, Group{Source: s, Entries: group})
	}
	return groups
}

func rankBefore(a, b HistoryEntry) bool {
	aScore, aScored := entryScore(a)
	bScore, bScored := entryScore(b)
	if aScored != bScored {
		return !aScored // unscored sorts as maximal
	}
	if aScored && aScore != bScore {
		return aScore > bScore
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func entryScore(e HistoryEntry) (float64, bool) {
	if e.Report.Kind == constants.ReportCompliance && e.Report.Compliance != nil {
		return CompliancePercentage(e.Report.Compliance), true
	}
	return 0, false
}
