package dataset

import (
	"time"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

// Selection carries the user's filter controls. A nil slice means the
// control was left untouched (everything selected); a non-nil slice is
// compared against the dimension's full universe and only constrains
// when it differs from it. That "full selection means no filter" rule is
// a behavioral contract carried over from the dashboard it feeds, not an
// optimization: universes are computed once against the unfiltered table
// and never shrink under other active filters.
//
// A non-nil empty slice is an active constraint that matches nothing.
type Selection struct {
	// Date range, inclusive on both ends. Date filtering applies only
	// when both endpoints are set; a half-open or unset range is skipped
	// entirely, mirroring the single-date edge case of the range picker.
	StartDate time.Time
	EndDate   time.Time

	States           []string
	Weather          []string
	Severities       []int
	VisibilityLevels []models.VisibilityLevel
	RoadConditions   []models.RoadCondition
}

// Filter returns the view of records matching every active constraint.
// Dimensions AND-combine; values within a dimension OR-combine. The
// single pass over the table is borrowed from the usual mask-and-select
// approach: build lookup sets up front, test each row once.
func (d *Dataset) Filter(sel Selection) *View {
	states := activeSet(sel.States, d.Universe.States)
	weather := activeSet(sel.Weather, d.Universe.Weather)
	severities := activeSet(sel.Severities, d.Universe.Severities)
	visibility := activeSet(sel.VisibilityLevels, d.Universe.VisibilityLevels)
	roads := activeSet(sel.RoadConditions, d.Universe.RoadConditions)

	dateActive := !sel.StartDate.IsZero() && !sel.EndDate.IsZero()

	if !dateActive && states == nil && weather == nil && severities == nil &&
		visibility == nil && roads == nil {
		return d.All()
	}

	indices := make([]int, 0, len(d.Records))
	for i := range d.Records {
		r := &d.Records[i]
		if dateActive && (r.Date.Before(sel.StartDate) || r.Date.After(sel.EndDate)) {
			continue
		}
		if states != nil && !states[r.State] {
			continue
		}
		if weather != nil && !weather[r.Weather] {
			continue
		}
		if severities != nil && !severities[r.Severity] {
			continue
		}
		if visibility != nil && !visibility[r.VisibilityLevel] {
			continue
		}
		if roads != nil && !roads[r.RoadCondition] {
			continue
		}
		indices = append(indices, i)
	}

	return &View{ds: d, indices: indices}
}

// activeSet builds the lookup set for a dimension, or returns nil when
// the dimension imposes no constraint: either the control was untouched
// (nil selection) or the selection covers the full universe.
func activeSet[T comparable](selected, universe []T) map[T]bool {
	if selected == nil {
		return nil
	}
	set := make(map[T]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}
	if setEqual(set, universe) {
		return nil
	}
	return set
}

func setEqual[T comparable](set map[T]bool, universe []T) bool {
	distinct := make(map[T]bool, len(universe))
	for _, v := range universe {
		distinct[v] = true
	}
	if len(set) != len(distinct) {
		return false
	}
	for v := range distinct {
		if !set[v] {
			return false
		}
	}
	return true
}
