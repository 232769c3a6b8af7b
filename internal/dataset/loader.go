package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/roadsafe/go-accident-analytics/internal/models"
)

// Source column names, as produced by the upstream cleaning job.
const (
	colStartTime  = "Start_Time"
	colLatitude   = "Start_Lat"
	colLongitude  = "Start_Lng"
	colSeverity   = "Severity"
	colState      = "State"
	colWeather    = "Weather_Condition"
	colVisibility = "Visibility(mi)"
	colJunction   = "Junction"
	colCrossing   = "Crossing"
	colRoundabout = "Roundabout"
	colBump       = "Bump"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000000000",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// columns maps each known column name to its index in the header, or -1
// when the file does not carry it.
type columns struct {
	startTime  int
	latitude   int
	longitude  int
	severity   int
	state      int
	weather    int
	visibility int
	junction   int
	crossing   int
	roundabout int
	bump       int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{
		startTime: -1, latitude: -1, longitude: -1, severity: -1,
		state: -1, weather: -1, visibility: -1,
		junction: -1, crossing: -1, roundabout: -1, bump: -1,
	}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colStartTime:
			cols.startTime = i
		case colLatitude:
			cols.latitude = i
		case colLongitude:
			cols.longitude = i
		case colSeverity:
			cols.severity = i
		case colState:
			cols.state = i
		case colWeather:
			cols.weather = i
		case colVisibility:
			cols.visibility = i
		case colJunction:
			cols.junction = i
		case colCrossing:
			cols.crossing = i
		case colRoundabout:
			cols.roundabout = i
		case colBump:
			cols.bump = i
		}
	}

	required := map[string]int{
		colStartTime: cols.startTime,
		colLatitude:  cols.latitude,
		colLongitude: cols.longitude,
		colSeverity:  cols.severity,
		colState:     cols.state,
		colWeather:   cols.weather,
	}
	for name, idx := range required {
		if idx < 0 {
			return cols, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func (c columns) schema() models.Schema {
	return models.Schema{
		HasVisibility: c.visibility >= 0,
		HasJunction:   c.junction >= 0,
		HasCrossing:   c.crossing >= 0,
		HasRoundabout: c.roundabout >= 0,
		HasBump:       c.bump >= 0,
	}
}

// Load reads the accident CSV at path and builds the canonical dataset.
// Rows missing any required field are dropped; an unopenable or
// header-less file is an error the caller should treat as fatal.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("map dataset header: %w", err)
	}
	schema := cols.schema()

	ds := &Dataset{Schema: schema}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed lines are a data-quality issue, not a fatal one.
			ds.Dropped++
			continue
		}

		rec, ok := parseRow(row, cols, schema)
		if !ok {
			ds.Dropped++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	ds.Universe = buildUniverse(ds.Records)
	return ds, nil
}

// parseRow converts one CSV row into a Record. ok is false when the row
// fails the required-field checks and must be excluded.
func parseRow(row []string, cols columns, schema models.Schema) (models.Record, bool) {
	var rec models.Record

	startTime, ok := parseTimestamp(cell(row, cols.startTime))
	if !ok {
		return rec, false
	}
	lat, ok := parseFloat(cell(row, cols.latitude))
	if !ok {
		return rec, false
	}
	lng, ok := parseFloat(cell(row, cols.longitude))
	if !ok {
		return rec, false
	}
	severity, ok := parseSeverity(cell(row, cols.severity))
	if !ok {
		return rec, false
	}
	state := strings.TrimSpace(cell(row, cols.state))
	weather := strings.TrimSpace(cell(row, cols.weather))
	if state == "" || weather == "" {
		return rec, false
	}

	rec = models.Record{
		StartTime: startTime,
		Latitude:  lat,
		Longitude: lng,
		Severity:  severity,
		State:     state,
		Weather:   weather,
	}

	if schema.HasVisibility {
		rec.Visibility, rec.VisibilityOK = parseFloat(cell(row, cols.visibility))
	}
	rec.Junction = parseFlag(cell(row, cols.junction))
	rec.Crossing = parseFlag(cell(row, cols.crossing))
	rec.Roundabout = parseFlag(cell(row, cols.roundabout))
	rec.Bump = parseFlag(cell(row, cols.bump))

	derive(&rec, schema)
	return rec, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseSeverity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Severity arrives as "3" or occasionally "3.0".
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// parseFlag accepts only a literal boolean true. Numeric or truthy-string
// cells ("1", "yes") do not count as set.
func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
