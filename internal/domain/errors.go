package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidIngredient is returned when an ingredient has an empty name
	// or a negative quantity
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrNegativePrice is returned when a catalog product carries a negative price
	ErrNegativePrice = errors.New("product has negative price")

	// ErrStoreUnknown is returned when a requested store id is not in the catalog
	ErrStoreUnknown = errors.New("unknown store id")

	// ErrCatalogUnavailable is returned when the catalog index has not been loaded
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
