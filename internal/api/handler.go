package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadsafe/go-accident-analytics/internal/config"
	"github.com/roadsafe/go-accident-analytics/internal/dataset"
	"github.com/roadsafe/go-accident-analytics/internal/models"
	"github.com/roadsafe/go-accident-analytics/internal/observability"
)

const dateLayout = "2006-01-02"

type Handler struct {
	ds      *dataset.Dataset
	cfg     config.APIConfig
	metrics *observability.Metrics
}

func NewHandler(ds *dataset.Dataset, cfg config.APIConfig, metrics *observability.Metrics) *Handler {
	return &Handler{
		ds:      ds,
		cfg:     cfg,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/filters", h.getFilters)
	r.GET("/api/overview", h.getOverview)
	r.GET("/api/dashboard", h.getDashboard)
	r.GET("/api/accidents", h.getAccidents)
	r.GET("/health", h.health)
}

// getFilters returns the control metadata the frontend needs to build
// its multi-selects and date picker: the full universe per dimension and
// the date bounds of the data.
func (h *Handler) getFilters(c *gin.Context) {
	u := h.ds.Universe
	c.JSON(http.StatusOK, gin.H{
		"states":            u.States,
		"weather":           u.Weather,
		"severities":        u.Severities,
		"visibility_levels": u.VisibilityLevels,
		"road_conditions":   u.RoadConditions,
		"min_date":          u.MinDate.Format(dateLayout),
		"max_date":          u.MaxDate.Format(dateLayout),
		"total_records":     len(h.ds.Records),
	})
}

// getOverview serves the unfiltered landing view: headline severity
// stats and a sampled hotspot layer over the whole dataset.
func (h *Handler) getOverview(c *gin.Context) {
	view := h.ds.All()
	c.JSON(http.StatusOK, gin.H{
		"stats": view.Stats(),
		"map":   toGeoJSON(view.Sample(h.cfg.MapSampleCap)),
	})
}

// getDashboard recomputes every chart table for the current filter
// selection in one round trip.
func (h *Handler) getDashboard(c *gin.Context) {
	view := h.filteredView(c)
	c.JSON(http.StatusOK, gin.H{
		"stats":                 view.Stats(),
		"hourly":                view.HourlyCounts(),
		"severity_by_hour":      view.SeverityByHour(),
		"road_conditions":       view.RoadConditionCounts(),
		"top_weather":           view.TopWeatherCounts(h.cfg.TopWeatherLimit),
		"severity_distribution": view.SeverityCounts(),
		"map":                   toGeoJSON(view.Sample(h.cfg.MapSampleCap)),
	})
}

// getAccidents serves only the filtered map layer, for refreshes that
// leave the chart panels untouched.
func (h *Handler) getAccidents(c *gin.Context) {
	view := h.filteredView(c)
	fc := toGeoJSON(view.Sample(h.cfg.MapSampleCap))
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) filteredView(c *gin.Context) *dataset.View {
	view := h.ds.Filter(parseSelection(c))
	h.metrics.FilterQueries.Inc()
	h.metrics.FilteredRows.Observe(float64(view.Len()))
	return view
}

// parseSelection maps query params onto a filter selection. A dimension
// param that is absent means the control is untouched; a present-but-
// empty param is an empty selection, which deliberately matches nothing.
// Unparseable severities and dates are ignored, matching how the rest of
// the API treats bad query values.
func parseSelection(c *gin.Context) dataset.Selection {
	var sel dataset.Selection

	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			sel.StartDate = t
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			sel.EndDate = t
		}
	}

	sel.States = queryList(c, "states")
	sel.Weather = queryList(c, "weather")

	if vals := queryList(c, "severities"); vals != nil {
		sel.Severities = make([]int, 0, len(vals))
		for _, v := range vals {
			if n, err := strconv.Atoi(v); err == nil {
				sel.Severities = append(sel.Severities, n)
			}
		}
	}
	if vals := queryList(c, "visibility"); vals != nil {
		sel.VisibilityLevels = make([]models.VisibilityLevel, 0, len(vals))
		for _, v := range vals {
			sel.VisibilityLevels = append(sel.VisibilityLevels, models.VisibilityLevel(v))
		}
	}
	if vals := queryList(c, "road_conditions"); vals != nil {
		sel.RoadConditions = make([]models.RoadCondition, 0, len(vals))
		for _, v := range vals {
			sel.RoadConditions = append(sel.RoadConditions, models.RoadCondition(v))
		}
	}

	return sel
}

// queryList collects a multi-select param. Values may be repeated
// (?states=CA&states=TX) or comma-separated (?states=CA,TX). Returns nil
// when the param is absent and a non-nil slice (possibly empty) when it
// is present.
func queryList(c *gin.Context, key string) []string {
	raw, ok := c.Request.URL.Query()[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
