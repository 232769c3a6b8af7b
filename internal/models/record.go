package models

import "time"

type VisibilityLevel string

const (
	VisibilityClear   VisibilityLevel = "Clear"
	VisibilityUnclear VisibilityLevel = "Unclear"
	VisibilityUnknown VisibilityLevel = "Unknown"
)

type RoadCondition string

const (
	RoadJunction   RoadCondition = "Junction"
	RoadCrossing   RoadCondition = "Crossing"
	RoadRoundabout RoadCondition = "Roundabout"
	RoadBump       RoadCondition = "Bump"
	RoadStraight   RoadCondition = "Straight Road"
)

// Severity levels as recorded in the source data (1 = least severe).
const (
	SeveritySlight = 2
	SeveritySevere = 3
	SeverityFatal  = 4
)

// Record is one cleaned accident row. Rows that survive loading always
// carry a valid timestamp, coordinates, severity, state and weather
// condition; the optional fields default to their zero values when the
// source column is missing (see Schema).
type Record struct {
	StartTime time.Time
	Date      time.Time // civil date, midnight UTC
	Hour      int       // 0-23
	Weekday   string    // e.g. "Monday"

	Latitude  float64
	Longitude float64
	Severity  int // 1-4
	State     string
	Weather   string

	// Visibility in miles. VisibilityOK is false when the cell was empty
	// or not numeric.
	Visibility   float64
	VisibilityOK bool

	// Infrastructure flags; false when the column is absent from the file.
	Junction   bool
	Crossing   bool
	Roundabout bool
	Bump       bool

	// Derived at load time, never null afterwards.
	VisibilityLevel VisibilityLevel
	RoadCondition   RoadCondition
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (r *Record) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// Schema records which optional columns were present in the source file.
// Presence is decided once at load time so downstream code never has to
// probe for columns by name.
type Schema struct {
	HasVisibility bool
	HasJunction   bool
	HasCrossing   bool
	HasRoundabout bool
	HasBump       bool
}
