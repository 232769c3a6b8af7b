package dataset

import (
	"sort"
	"sync"
	"time"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

// Dataset is the canonical accident table: loaded, cleaned and derived
// once per process, read-only afterwards. Filtering and aggregation
// operate on Views into it and never mutate it.
type Dataset struct {
	Records  []models.Record
	Schema   models.Schema
	Universe Universe

	// Rows discarded at load time for missing required fields.
	Dropped int
}

// Universe holds the distinct values observed for each filter dimension
// in the unfiltered dataset, plus the date bounds for the range picker.
// It is computed exactly once against the canonical table; active filters
// never shrink it.
type Universe struct {
	States           []string
	Weather          []string
	Severities       []int
	VisibilityLevels []models.VisibilityLevel
	RoadConditions   []models.RoadCondition
	MinDate          time.Time
	MaxDate          time.Time
}

func buildUniverse(records []models.Record) Universe {
	states := make(map[string]bool)
	weather := make(map[string]bool)
	severities := make(map[int]bool)
	roads := make(map[models.RoadCondition]bool)

	var minDate, maxDate time.Time
	for i := range records {
		r := &records[i]
		states[r.State] = true
		weather[r.Weather] = true
		severities[r.Severity] = true
		roads[r.RoadCondition] = true
		if minDate.IsZero() || r.Date.Before(minDate) {
			minDate = r.Date
		}
		if maxDate.IsZero() || r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	u := Universe{
		// The visibility control always offers exactly these two choices,
		// regardless of whether the column was present.
		VisibilityLevels: []models.VisibilityLevel{models.VisibilityClear, models.VisibilityUnclear},
		MinDate:          minDate,
		MaxDate:          maxDate,
	}
	for s := range states {
		u.States = append(u.States, s)
	}
	sort.Strings(u.States)
	for w := range weather {
		u.Weather = append(u.Weather, w)
	}
	sort.Strings(u.Weather)
	for s := range severities {
		u.Severities = append(u.Severities, s)
	}
	sort.Ints(u.Severities)
	for r := range roads {
		u.RoadConditions = append(u.RoadConditions, r)
	}
	sort.Slice(u.RoadConditions, func(i, j int) bool { return u.RoadConditions[i] < u.RoadConditions[j] })

	return u
}

// View is a read-only subset of a Dataset, expressed as row indices into
// the parent. A nil index slice with all=true means "every row"; no row
// data is ever copied.
type View struct {
	ds      *Dataset
	indices []int
	all     bool
}

// All returns the view covering the whole dataset.
func (d *Dataset) All() *View {
	return &View{ds: d, all: true}
}

func (v *View) Len() int {
	if v.all {
		return len(v.ds.Records)
	}
	return len(v.indices)
}

func (v *View) record(i int) *models.Record {
	if v.all {
		return &v.ds.Records[i]
	}
	return &v.ds.Records[v.indices[i]]
}

// Records materializes the view's rows. Intended for tests and small
// sampled subsets, not the full table.
func (v *View) Records() []models.Record {
	out := make([]models.Record, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = *v.record(i)
	}
	return out
}

// Store owns the one-time load of the canonical dataset. Every caller
// shares the same table; a load failure is sticky and reported to each
// caller.
type Store struct {
	path string
	once sync.Once
	ds   *Dataset
	err  error
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Dataset loads the table on first call and returns the cached result on
// every call after that.
func (s *Store) Dataset() (*Dataset, error) {
	s.once.Do(func() {
		s.ds, s.err = Load(s.path)
	})
	return s.ds, s.err
}
