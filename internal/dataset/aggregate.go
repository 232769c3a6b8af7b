package dataset

import (
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

// Aggregation outputs are small summary tables, one per chart. All of
// them are pure reads over a view and return empty results for empty
// input.

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type HourSeverityCount struct {
	Hour     int `json:"hour"`
	Severity int `json:"severity"`
	Count    int `json:"count"`
}

type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type SeverityStats struct {
	Total  int `json:"total"`
	Fatal  int `json:"fatal"`  // severity 4
	Severe int `json:"severe"` // severity 3
	Slight int `json:"slight"` // severity 2
}

// HourlyCounts groups rows by hour of day, ascending. Hours with no rows
// are omitted rather than zero-filled; the chart draws only observed
// buckets.
func (v *View) HourlyCounts() []HourCount {
	var perHour [24]int
	for i := 0; i < v.Len(); i++ {
		perHour[v.record(i).Hour]++
	}

	out := make([]HourCount, 0, 24)
	for hour, count := range perHour {
		if count > 0 {
			out = append(out, HourCount{Hour: hour, Count: count})
		}
	}
	return out
}

// SeverityByHour counts rows per (hour, severity) pair, sorted by hour
// then severity for a stable series layout.
func (v *View) SeverityByHour() []HourSeverityCount {
	type key struct{ hour, severity int }
	counts := make(map[key]int)
	for i := 0; i < v.Len(); i++ {
		r := v.record(i)
		counts[key{r.Hour, r.Severity}]++
	}

	out := make([]HourSeverityCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, HourSeverityCount{Hour: k.hour, Severity: k.severity, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

// RoadConditionCounts counts rows per road condition in first-seen order.
// Presentation order is the consumer's choice.
func (v *View) RoadConditionCounts() []CategoryCount {
	return v.countCategories(func(r *models.Record) string {
		return string(r.RoadCondition)
	})
}

// TopWeatherCounts returns the most frequent weather conditions,
// descending by count, capped at limit. Ties keep first-seen order.
func (v *View) TopWeatherCounts(limit int) []CategoryCount {
	counts := v.countCategories(func(r *models.Record) string {
		return r.Weather
	})
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// SeverityCounts counts rows per severity level, ascending. Feeds the
// severity distribution pie.
func (v *View) SeverityCounts() []CategoryCount {
	counts := make(map[int]int)
	for i := 0; i < v.Len(); i++ {
		counts[v.record(i).Severity]++
	}
	levels := make([]int, 0, len(counts))
	for s := range counts {
		levels = append(levels, s)
	}
	sort.Ints(levels)

	out := make([]CategoryCount, 0, len(levels))
	for _, s := range levels {
		out = append(out, CategoryCount{Label: strconv.Itoa(s), Count: counts[s]})
	}
	return out
}

// Stats computes the headline severity buckets. Severity 1 contributes
// to the total only.
func (v *View) Stats() SeverityStats {
	var s SeverityStats
	for i := 0; i < v.Len(); i++ {
		s.Total++
		switch v.record(i).Severity {
		case models.SeverityFatal:
			s.Fatal++
		case models.SeveritySevere:
			s.Severe++
		case models.SeveritySlight:
			s.Slight++
		}
	}
	return s
}

// countCategories tallies rows by a string key, preserving first-seen
// order so repeated runs over the same view are deterministic.
func (v *View) countCategories(key func(*models.Record) string) []CategoryCount {
	index := make(map[string]int)
	out := []CategoryCount{}
	for i := 0; i < v.Len(); i++ {
		k := key(v.record(i))
		if pos, ok := index[k]; ok {
			out[pos].Count++
		} else {
			index[k] = len(out)
			out = append(out, CategoryCount{Label: k, Count: 1})
		}
	}
	return out
}

// Sample returns up to n records drawn uniformly from the view, for map
// rendering. The draw is not reproducible across runs and does not need
// to be.
func (v *View) Sample(n int) []models.Record {
	if n <= 0 || v.Len() == 0 {
		return []models.Record{}
	}
	if v.Len() <= n {
		return v.Records()
	}

	// Reservoir sampling keeps memory at O(n) for large tables.
	out := make([]models.Record, n)
	for i := 0; i < n; i++ {
		out[i] = *v.record(i)
	}
	for i := n; i < v.Len(); i++ {
		j := rand.IntN(i + 1)
		if j < n {
			out[j] = *v.record(i)
		}
	}
	return out
}
