package domain

// POIType classifies a point of interest in the park catalog.
type POIType string

const (
	POIAttraction POIType = "attraction"
	POIShow       POIType = "show"
	POIRestaurant POIType = "restaurant"
	POIShop       POIType = "shop"
	POIService    POIType = "service"
)

// ValidPOIType reports whether t is one of the closed set of catalog types.
func ValidPOIType(t POIType) bool {
	switch t {
	case POIAttraction, POIShow, POIRestaurant, POIShop, POIService:
		return true
	}
	return false
}

// PointOfInterest is a catalog entity as served by the park backend.
//
// The backend owns this data; the companion service only reads it and
// snapshots it into planner and favorite entries.
type PointOfInterest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        POIType `json:"type"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Image       string  `json:"image,omitempty"`
	WaitMinutes int     `json:"wait_minutes,omitempty"`
}
