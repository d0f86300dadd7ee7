package enrich

import (
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// StoreInfo holds the preloaded locality signals for one store.
type StoreInfo struct {
	Distance        domain.DistanceBucket `json:"distance" mapstructure:"distance"`
	LeadTimeMinutes int                   `json:"leadTimeMinutes" mapstructure:"lead_time_minutes"`
}

// StoreTable answers distance and lead-time lookups from a preloaded map.
// Stores missing from the table get neutral values, never an error.
type StoreTable struct {
	info map[string]StoreInfo
}

// NewStoreTable builds the table. The map may be nil.
func NewStoreTable(info map[string]StoreInfo) *StoreTable {
	normalized := make(map[string]StoreInfo, len(info))
	for id, si := range info {
		normalized[strings.ToLower(id)] = si
	}
	return &StoreTable{info: normalized}
}

// Distance returns the store's distance bucket, or DistanceUnknown.
func (t *StoreTable) Distance(storeID string) domain.DistanceBucket {
	return t.info[strings.ToLower(storeID)].Distance
}

// LeadTimeMinutes returns the store's fulfillment lead time, or 0.
func (t *StoreTable) LeadTimeMinutes(storeID string) int {
	return t.info[strings.ToLower(storeID)].LeadTimeMinutes
}
