package webapi

import "net/http"

type (
	healthBody struct {
		Status   string `json:"status"`
		Service  string `json:"service"`
		Database string `json:"database"`
	}
)

// HealthHandler reports whether the service can reach its database,
// 200/connected when it can, 503/disconnected when it cannot.
func HealthHandler(service string, healthy func(r *http.Request) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !healthy(r) {
			JSON(w, r, http.StatusServiceUnavailable, healthBody{
				Status:   "ERROR",
				Service:  service,
				Database: "disconnected",
			})
			return
		}
		JSON(w, r, http.StatusOK, healthBody{
			Status:   "OK",
			Service:  service,
			Database: "connected",
		})
	}
}
