package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// fileProduct is one catalog row as stored on disk. Kept separate from the
// domain type so the file format can evolve without touching the engine.
type fileProduct struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	Brand         string  `json:"brand,omitempty"`
	Price         float64 `json:"price"`
	Size          string  `json:"size,omitempty"`
	UnitPrice     float64 `json:"unitPrice,omitempty"`
	UnitPriceUnit string  `json:"unitPriceUnit,omitempty"`
	Organic       bool    `json:"organic,omitempty"`
	Packaging     string  `json:"packaging,omitempty"`
	Form          string  `json:"form,omitempty"`
}

// fileCatalog is the top-level catalog file layout: products grouped per
// store.
type fileCatalog struct {
	Stores []struct {
		StoreID  string        `json:"storeId"`
		Products []fileProduct `json:"products"`
	} `json:"stores"`
}

// sizeRegex matches size strings like "8 oz", "1.5 lb", "250 g".
var sizeRegex = regexp.MustCompile(`(?i)^\s*(\d+\.?\d*)\s*(fl\s*oz|oz|lb|lbs|g|kg|ml|l|ct|each|bunch)\s*$`)

// LoadFromFile reads a JSON catalog fixture and builds a validated Index.
// Rows missing a unit price get one derived from price and size where the
// size is parseable; underivable rows keep a zero unit price and simply
// receive neutral unit-value scoring.
func LoadFromFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file fileCatalog
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	var products []domain.ProductCandidate
	for _, store := range file.Stores {
		for _, row := range store.Products {
			products = append(products, toDomain(store.StoreID, row))
		}
	}

	index, err := NewIndex(products)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}

	log.Printf("[CATALOG] loaded %d products across %d stores from %s", index.Len(), len(index.Stores()), path)
	return index, nil
}

// toDomain maps one file row to the domain candidate, deriving the unit
// price when absent.
func toDomain(storeID string, row fileProduct) domain.ProductCandidate {
	candidate := domain.ProductCandidate{
		ProductID:     row.ProductID,
		Title:         row.Title,
		Brand:         row.Brand,
		StoreID:       storeID,
		Price:         row.Price,
		Size:          row.Size,
		UnitPrice:     row.UnitPrice,
		UnitPriceUnit: row.UnitPriceUnit,
		Organic:       row.Organic,
		PackagingKind: parsePackaging(row.Packaging),
		FormDetected:  domain.ParseForm(row.Form),
	}

	if candidate.UnitPrice == 0 && candidate.Price > 0 {
		if amount, unit, ok := parseSize(row.Size); ok && amount > 0 {
			candidate.UnitPrice = candidate.Price / amount
			candidate.UnitPriceUnit = unit
		}
	}
	return candidate
}

// parseSize extracts a numeric amount and unit from a size string.
func parseSize(size string) (float64, string, bool) {
	m := sizeRegex.FindStringSubmatch(size)
	if m == nil {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	unit := strings.ToLower(strings.Join(strings.Fields(m[2]), " "))
	return amount, unit, true
}

// parsePackaging normalizes the file's packaging field into the domain
// vocabulary; unknown values stay unknown and score neutrally.
func parsePackaging(s string) domain.PackagingKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glass":
		return domain.PackagingGlass
	case "paper":
		return domain.PackagingPaper
	case "loose":
		return domain.PackagingLoose
	case "plastic":
		return domain.PackagingPlastic
	case "plastic_clamshell", "clamshell":
		return domain.PackagingPlasticClamshell
	default:
		return domain.PackagingUnknown
	}
}
