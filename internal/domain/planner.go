package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the user-assigned importance of a planner entry.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SourceRef is the structured identity of the point of interest a planner
// item was built from. Items added through this service always carry one;
// items loaded from the backend may not, in which case the legacy
// fallbacks in RefersTo apply.
type SourceRef struct {
	Type POIType `json:"type"`
	ID   string  `json:"id"`
}

// PlannerItem is one entry of the user's day plan.
type PlannerItem struct {
	// ID is either a locally generated id (see NewLocalItemID) or an
	// opaque id assigned by the backend for items loaded via refresh.
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      POIType    `json:"type"`
	Time      string     `json:"time,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Priority  Priority   `json:"priority"`
	Completed bool       `json:"completed"`
	Source    *SourceRef `json:"source_ref,omitempty"`

	// OriginalData is the catalog snapshot taken when the item was added.
	// When present its ID is the canonical cross-reference key.
	OriginalData *PointOfInterest `json:"original_data,omitempty"`
}

// NewLocalItemID builds the id for a locally added planner item.
// Layout: {type}-{sourceID}-{unixms}-{rand}-{rand}. The second segment is
// relied on by RefersTo for items that lost their snapshot, so sourceID
// must not contain '-'.
func NewLocalItemID(t POIType, sourceID string) string {
	u := uuid.NewString()
	return fmt.Sprintf("%s-%s-%d-%s-%s", t, sourceID, time.Now().UnixMilli(), u[:8], u[9:13])
}

// NormalizeName canonicalizes a display name for identity comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RefersTo reports whether the item represents the point of interest
// identified by sourceID/name. Three tiers, first match wins:
//
//  1. structured source ref or catalog snapshot id equality
//  2. source id reconstructed from the local id layout
//  3. normalized name equality (best effort, documented weak tier)
func (it *PlannerItem) RefersTo(sourceID, name string) bool {
	if it.Source != nil && it.Source.ID == sourceID {
		return true
	}
	if it.OriginalData != nil && it.OriginalData.ID == sourceID {
		return true
	}
	// Reconstruction only applies to items that lost their snapshot;
	// backend-assigned ids do not follow the local layout.
	if it.Source == nil && it.OriginalData == nil {
		if seg := strings.Split(it.ID, "-"); len(seg) >= 2 && seg[1] == sourceID {
			return true
		}
	}
	return NormalizeName(it.Name) == NormalizeName(name)
}

// SameEntry reports whether two planner items represent the same point of
// interest, using the same tiers as RefersTo.
func SameEntry(a, b *PlannerItem) bool {
	if a.Source != nil && b.Source != nil && a.Source.ID == b.Source.ID {
		return true
	}
	if a.OriginalData != nil && b.OriginalData != nil && a.OriginalData.ID == b.OriginalData.ID {
		return true
	}
	return NormalizeName(a.Name) == NormalizeName(b.Name)
}

// DedupeByName drops entries whose normalized name was already seen.
// First occurrence wins and insertion order is preserved. This is the
// weaker guarantee applied to backend-loaded collections, where ids are
// opaque and snapshots may be missing.
func DedupeByName(items []*PlannerItem) []*PlannerItem {
	seen := make(map[string]bool, len(items))
	out := make([]*PlannerItem, 0, len(items))
	for _, it := range items {
		key := NormalizeName(it.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
