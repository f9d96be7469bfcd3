package handlers

import (
	"net/http"

	"budget-planner/src/logger"
)

// ClearCache drops every cached dashboard.
func ClearCache(cache DashboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := cache.Clear()

		log := logger.FromContext(r.Context())
		log.Info().Int("entries", n).Msg("dashboard cache cleared")
		writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
	}
}
