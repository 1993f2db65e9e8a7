package index

import (
	"sort"
	"sync"
	"time"

	"github.com/enjoypark/companion/internal/domain"
)

// MemoryIndex provides in-memory lookup for the park catalog. It is the
// primary source for browse reads; the Redis mirror only seeds it across
// restarts.
type MemoryIndex struct {
	mu         sync.RWMutex
	pois       map[string]domain.PointOfInterest // ID -> entry
	lastReload time.Time
}

// NewMemoryIndex creates an empty catalog index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		pois: make(map[string]domain.PointOfInterest),
	}
}

// UpdateAll replaces the whole catalog.
func (idx *MemoryIndex) UpdateAll(pois []domain.PointOfInterest) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.pois = make(map[string]domain.PointOfInterest, len(pois))
	for _, p := range pois {
		idx.pois[p.ID] = p
	}
	idx.lastReload = time.Now()
}

// Get retrieves a catalog entry by id.
func (idx *MemoryIndex) Get(id string) (domain.PointOfInterest, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.pois[id]
	return p, ok
}

// All returns every catalog entry, sorted by name for stable output.
func (idx *MemoryIndex) All() []domain.PointOfInterest {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.PointOfInterest, 0, len(idx.pois))
	for _, p := range idx.pois {
		out = append(out, p)
	}
	sortByName(out)
	return out
}

// ByType returns the catalog entries of one type, sorted by name.
func (idx *MemoryIndex) ByType(t domain.POIType) []domain.PointOfInterest {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.PointOfInterest, 0, len(idx.pois))
	for _, p := range idx.pois {
		if p.Type == t {
			out = append(out, p)
		}
	}
	sortByName(out)
	return out
}

// Count returns the number of catalog entries.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.pois)
}

// LastReload returns the timestamp of the last catalog replacement.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

func sortByName(pois []domain.PointOfInterest) {
	sort.Slice(pois, func(i, j int) bool {
		if pois[i].Name == pois[j].Name {
			return pois[i].ID < pois[j].ID
		}
		return pois[i].Name < pois[j].Name
	})
}
