package api

import (
	"github.com/roadsafe/go-accident-analytics/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(records []models.Record) FeatureCollection {
	features := make([]Feature, 0, len(records))

	for i := range records {
		r := &records[i]
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{r.Longitude, r.Latitude},
			},
			Properties: map[string]any{
				"severity":         r.Severity,
				"state":            r.State,
				"weather":          r.Weather,
				"visibility_level": string(r.VisibilityLevel),
				"road_condition":   string(r.RoadCondition),
				"timestamp":        r.StartTime,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
