package domain

// CatalogRepository is the read-only product index the engine queries.
// Implementations must be safe for concurrent readers; refresh is done by
// building a new repository and swapping it in, never by mutation.
type CatalogRepository interface {
	// ProductsForStore returns every product carried by the given store,
	// in stable catalog order. Unknown stores return an empty slice.
	ProductsForStore(storeID string) []ProductCandidate

	// Stores returns the sorted ids of every store in the catalog.
	Stores() []string

	// HasStore reports whether the catalog carries the given store.
	HasStore(storeID string) bool
}

// EWGSource classifies ingredients against the EWG produce lists.
// Preloaded; must never block.
type EWGSource interface {
	Bucket(ingredientName string) EWGBucket
}

// StoreInfoSource provides locality signals for a store.
// Preloaded; must never block.
type StoreInfoSource interface {
	// Distance returns the coarse distance bucket for a store, or
	// DistanceUnknown when no data is loaded for it.
	Distance(storeID string) DistanceBucket

	// LeadTimeMinutes returns the fulfillment lead time for a store,
	// or 0 when unknown.
	LeadTimeMinutes(storeID string) int
}
