package domain

import "time"

// FavoriteItem is a saved point of interest. The id equals the catalog id
// of the underlying entity; the remaining fields are a denormalized
// snapshot taken at add time.
type FavoriteItem struct {
	ID          string  `json:"id"`
	Type        POIType `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Image       string  `json:"image,omitempty"`
	AddedDate   string  `json:"added_date"`
}

// NewFavorite snapshots a catalog entity into a favorite, stamped with
// the current date. Server truth is not consulted for the date.
func NewFavorite(poi *PointOfInterest, now time.Time) FavoriteItem {
	return FavoriteItem{
		ID:          poi.ID,
		Type:        poi.Type,
		Name:        poi.Name,
		Description: poi.Description,
		Location:    poi.Location,
		Rating:      poi.Rating,
		Image:       poi.Image,
		AddedDate:   now.Format("2006-01-02"),
	}
}
