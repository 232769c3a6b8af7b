package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

func testRecord(day, hour, severity int, state, weather string, vis models.VisibilityLevel, road models.RoadCondition) models.Record {
	ts := time.Date(2022, 5, day, hour, 0, 0, 0, time.UTC)
	return models.Record{
		StartTime:       ts,
		Date:            civilDate(ts),
		Hour:            hour,
		Weekday:         ts.Weekday().String(),
		Latitude:        34.0,
		Longitude:       -118.0,
		Severity:        severity,
		State:           state,
		Weather:         weather,
		VisibilityLevel: vis,
		RoadCondition:   road,
	}
}

func testDataset() *Dataset {
	records := []models.Record{
		testRecord(1, 8, 2, "CA", "Clear", models.VisibilityClear, models.RoadStraight),
		testRecord(2, 8, 3, "CA", "Rain", models.VisibilityUnclear, models.RoadJunction),
		testRecord(3, 17, 4, "TX", "Rain", models.VisibilityClear, models.RoadCrossing),
		testRecord(4, 17, 2, "TX", "Fog", models.VisibilityUnclear, models.RoadStraight),
		testRecord(5, 23, 1, "NY", "Snow", models.VisibilityClear, models.RoadBump),
		testRecord(5, 8, 2, "NY", "Clear", models.VisibilityUnclear, models.RoadStraight),
	}
	return &Dataset{
		Records:  records,
		Universe: buildUniverse(records),
	}
}

func TestFilter_UntouchedSelectionReturnsEverything(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{})
	assert.Equal(t, len(ds.Records), view.Len())
}

func TestFilter_FullUniverseSelectionImposesNothing(t *testing.T) {
	ds := testDataset()

	unfiltered := ds.Filter(Selection{}).Len()
	full := ds.Filter(Selection{
		States: []string{"CA", "NY", "TX"},
	}).Len()

	assert.Equal(t, unfiltered, full)
}

func TestFilter_StateSubset(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{States: []string{"CA"}})

	assert.Equal(t, 2, view.Len())
	for _, r := range view.Records() {
		assert.Equal(t, "CA", r.State)
	}
}

func TestFilter_EmptyActiveSelectionMatchesNothing(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{Severities: []int{}})
	assert.Equal(t, 0, view.Len())
}

func TestFilter_DimensionsANDCombine(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{
		States:     []string{"TX"},
		Severities: []int{2},
	})

	assert.Equal(t, 1, view.Len())
	r := view.Records()[0]
	assert.Equal(t, "TX", r.State)
	assert.Equal(t, 2, r.Severity)
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{
		StartDate: time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2022, 5, 4, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 3, view.Len())
}

func TestFilter_HalfOpenDateRangeIsSkipped(t *testing.T) {
	ds := testDataset()

	// A lone date from the range picker does not constrain anything.
	view := ds.Filter(Selection{
		StartDate: time.Date(2022, 5, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, len(ds.Records), view.Len())

	// But the other dimensions still apply on top of the skipped range.
	view = ds.Filter(Selection{
		StartDate: time.Date(2022, 5, 3, 0, 0, 0, 0, time.UTC),
		States:    []string{"NY"},
	})
	assert.Equal(t, 2, view.Len())
}

func TestFilter_VisibilityUniverseIsFixedPair(t *testing.T) {
	ds := testDataset()

	// Clear+Unclear is the whole control, so selecting both is inactive.
	both := ds.Filter(Selection{
		VisibilityLevels: []models.VisibilityLevel{models.VisibilityClear, models.VisibilityUnclear},
	})
	assert.Equal(t, len(ds.Records), both.Len())

	clear := ds.Filter(Selection{
		VisibilityLevels: []models.VisibilityLevel{models.VisibilityClear},
	})
	assert.Equal(t, 3, clear.Len())
}

func TestFilter_UnknownValueStillConstrains(t *testing.T) {
	ds := testDataset()

	// "CA" plus a value nobody observed differs from the universe, so
	// the dimension stays active and matches only the CA rows.
	view := ds.Filter(Selection{States: []string{"CA", "ZZ"}})
	assert.Equal(t, 2, view.Len())
}

func TestFilter_RoadConditionSubset(t *testing.T) {
	ds := testDataset()
	view := ds.Filter(Selection{
		RoadConditions: []models.RoadCondition{models.RoadJunction, models.RoadCrossing},
	})
	assert.Equal(t, 2, view.Len())
}

func TestFilter_DoesNotMutateDataset(t *testing.T) {
	ds := testDataset()
	before := len(ds.Records)

	ds.Filter(Selection{States: []string{"CA"}})
	ds.Filter(Selection{Severities: []int{}})

	assert.Equal(t, before, len(ds.Records))
	assert.Equal(t, "CA", ds.Records[0].State)
}
