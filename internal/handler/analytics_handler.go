package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"socialdash/internal/service"
)

type AnalyticsPoint struct {
	Day        string  `json:"day"`
	Date       string  `json:"date"`
	Followers  float64 `json:"followers"`
	Engagement float64 `json:"engagement"`
}

// parseDays falls back to the default window on a missing or malformed value.
func parseDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		return service.DefaultAnalyticsDays
	}
	return service.NormalizeDays(days)
}

func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rows, err := h.AnalyticsService.Aggregate(r.Context(), userID, service.DashboardMetrics, parseDays(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	points := make([]AnalyticsPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, AnalyticsPoint{
			Day:        row.Date.Format("Jan 2"),
			Date:       row.Date.Format("2006-01-02"),
			Followers:  row.Values["followers"],
			Engagement: row.Values["engagement"],
		})
	}

	writeSuccess(w, points, http.StatusOK)
}

func (h *Handlers) StoredInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	samples, err := h.AnalyticsService.StoredInsights(r.Context(), userID,
		mux.Vars(r)["platform"], r.URL.Query().Get("metric"), parseDays(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, samples, http.StatusOK)
}
