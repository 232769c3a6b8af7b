package dataset

import (
	"time"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

// clearVisibilityMiles is the threshold above which visibility counts as
// clear.
const clearVisibilityMiles = 5

// derive fills in the computed columns of a record. It is row-independent
// and total: every field always ends up with one of its enumerated
// values.
func derive(rec *models.Record, schema models.Schema) {
	rec.Date = civilDate(rec.StartTime)
	rec.Hour = rec.StartTime.Hour()
	rec.Weekday = rec.StartTime.Weekday().String()
	rec.VisibilityLevel = deriveVisibility(rec, schema)
	rec.RoadCondition = deriveRoadCondition(rec)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// deriveVisibility buckets the visibility column. When the column exists,
// a missing or unparseable cell is classified Unclear, same as a reading
// below the threshold; Unknown is reserved for files without the column
// at all. Upstream consumers rely on that split, so it is kept as-is
// rather than folding null cells into Unknown.
func deriveVisibility(rec *models.Record, schema models.Schema) models.VisibilityLevel {
	if !schema.HasVisibility {
		return models.VisibilityUnknown
	}
	if rec.VisibilityOK && rec.Visibility >= clearVisibilityMiles {
		return models.VisibilityClear
	}
	return models.VisibilityUnclear
}

// deriveRoadCondition picks the first set flag in fixed priority order.
// Flags from absent columns are never set, so the check falls through to
// the next priority automatically.
func deriveRoadCondition(rec *models.Record) models.RoadCondition {
	switch {
	case rec.Junction:
		return models.RoadJunction
	case rec.Crossing:
		return models.RoadCrossing
	case rec.Roundabout:
		return models.RoadRoundabout
	case rec.Bump:
		return models.RoadBump
	default:
		return models.RoadStraight
	}
}
