package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/httpserver/deps"
)

type plannerListResponse struct {
	Items       []*domain.PlannerItem `json:"items"`
	Count       int                   `json:"count"`
	LastRefresh string                `json:"last_refresh,omitempty"`
}

type plannerAddRequest struct {
	POIID    string `json:"poi_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Time     string `json:"time,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// PlannerList returns the current day plan.
func PlannerList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, plannerList(d))
	}
}

// PlannerAdd adds an entry to the day plan, either from a catalog
// point of interest (poi_id) or as a free-form custom entry.
func PlannerAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req plannerAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		if req.POIID != "" {
			poi, ok := d.Catalog.Get(req.POIID)
			if !ok {
				writeError(w, http.StatusNotFound, "unknown point of interest")
				return
			}
			if d.Planner.IsAlreadyPlanned(poi.ID, poi.Name) {
				writeError(w, http.StatusConflict, "already planned")
				return
			}

			snapshot := poi
			item := &domain.PlannerItem{
				ID:           domain.NewLocalItemID(poi.Type, poi.ID),
				Name:         poi.Name,
				Type:         poi.Type,
				Time:         req.Time,
				Notes:        req.Notes,
				Priority:     parsePriority(req.Priority),
				Source:       &domain.SourceRef{Type: poi.Type, ID: poi.ID},
				OriginalData: &snapshot,
			}
			d.Planner.Add(item)
			writeJSON(w, http.StatusCreated, item)
			return
		}

		// Custom entry, no catalog backing.
		name := strings.TrimSpace(req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name or poi_id is required")
			return
		}
		poiType := domain.POIType(req.Type)
		if req.Type == "" {
			poiType = domain.POIService
		} else if !domain.ValidPOIType(poiType) {
			writeError(w, http.StatusBadRequest, "unknown type")
			return
		}

		item := &domain.PlannerItem{
			ID:       domain.NewLocalItemID(poiType, "custom"),
			Name:     name,
			Type:     poiType,
			Time:     req.Time,
			Notes:    req.Notes,
			Priority: parsePriority(req.Priority),
		}
		d.Planner.Add(item)
		writeJSON(w, http.StatusCreated, item)
	}
}

// PlannerRemove deletes one entry by id.
func PlannerRemove(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing item id")
			return
		}
		d.Planner.Remove(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// PlannerRefresh pulls backend planner items for the given date (defaults
// to today) and merges them with local state. Refresh never fails the
// request: on backend trouble the current plan is returned as-is.
func PlannerRefresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = d.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		d.Planner.Refresh(r.Context(), date)
		writeJSON(w, http.StatusOK, plannerList(d))
	}
}

func plannerList(d deps.Deps) plannerListResponse {
	resp := plannerListResponse{
		Items: d.Planner.Items(),
	}
	resp.Count = len(resp.Items)
	if last := d.Planner.LastRefresh(); !last.IsZero() {
		resp.LastRefresh = last.Format(time.RFC3339)
	}
	return resp
}

func parsePriority(s string) domain.Priority {
	switch domain.Priority(s) {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		return domain.Priority(s)
	default:
		return domain.PriorityMedium
	}
}
