package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/enjoypark/companion/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ItemsLoaded *int   `json:"items_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		catalogCount := d.Catalog.Count()
		lastReload := "never"
		if t := d.Catalog.LastReload(); !t.IsZero() {
			lastReload = t.Format("2006-01-02 15:04:05")
		}

		plannerCount := d.Planner.Count()
		lastRefresh := "never"
		if t := d.Planner.LastRefresh(); !t.IsZero() {
			lastRefresh = t.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          catalogCount > 0,
				ItemsLoaded: &catalogCount,
				LastReload:  lastReload,
			},
			"planner": {
				OK:          true,
				ItemsLoaded: &plannerCount,
				LastReload:  lastRefresh,
			},
			"redis": checkRedis(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	// Empty catalog means the park backend has never answered.
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "critical"
	}

	// Redis down means favorites and sessions do not persist.
	if rd, exists := components["redis"]; exists && !rd.OK {
		return "degraded"
	}

	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Impact: "favorites-and-session-volatile",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "favorites-and-session-volatile",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Impact: "none",
		Error:  "none",
	}
}
