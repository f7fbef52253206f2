package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/models"
)

// SortKey es el orden aplicado después del filtro
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortDiscount  SortKey = "discount"
	SortNewest    SortKey = "newest"
)

// ParseSortKey acepta las claves canónicas y los alias del sidebar
// ("price-low-high", "price-high-low"). Cualquier otra cosa es relevance.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc", "price-low-high":
		return SortPriceAsc
	case "price-desc", "price-high-low":
		return SortPriceDesc
	case "rating":
		return SortRating
	case "discount":
		return SortDiscount
	case "newest":
		return SortNewest
	default:
		return SortRelevance
	}
}

// PriceRange es un rango cerrado [Min, Max]
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// DefaultPriceRange es el rango inicial del storefront
var DefaultPriceRange = PriceRange{Min: 0, Max: 100000}

// Contains indica si price cae dentro del rango (ambos extremos incluidos)
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// normalized invierte los extremos si vienen al revés
func (r PriceRange) normalized() PriceRange {
	if r.Min > r.Max {
		return PriceRange{Min: r.Max, Max: r.Min}
	}
	return r
}

// FilterCriteria es transitorio: vive sólo durante la consulta
type FilterCriteria struct {
	SearchQuery string     `json:"search_query"`
	Category    string     `json:"category"`
	PriceRange  PriceRange `json:"price_range"`
	SortKey     SortKey    `json:"sort_key"`
}

// DefaultCriteria no filtra nada y mantiene el orden del catálogo
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category:   models.CategoryAll,
		PriceRange: DefaultPriceRange,
		SortKey:    SortRelevance,
	}
}

// Normalize completa valores vacíos y ordena el rango de precios
func (c FilterCriteria) Normalize() FilterCriteria {
	c.SearchQuery = strings.TrimSpace(c.SearchQuery)
	if c.Category == "" {
		c.Category = models.CategoryAll
	}
	c.PriceRange = c.PriceRange.normalized()
	c.SortKey = ParseSortKey(string(c.SortKey))
	return c
}

// cacheKey identifica la consulta en el caché
func (c FilterCriteria) cacheKey() string {
	return fmt.Sprintf(
		"catalog:query:q:%s_cat:%s_p:%d-%d_sort:%s",
		strings.ToLower(c.SearchQuery), c.Category, c.PriceRange.Min, c.PriceRange.Max, c.SortKey,
	)
}

// MatchesText indica si needle es substring (sin distinguir mayúsculas) de algún campo; needle vacío siempre coincide
func MatchesText(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Matches aplica los tres predicados (AND) a un producto
func (c FilterCriteria) Matches(p models.Product) bool {
	if !MatchesText(c.SearchQuery, p.Name, p.Description, p.Brand) {
		return false
	}
	if c.Category != models.CategoryAll && p.Category != c.Category {
		return false
	}
	return c.PriceRange.Contains(p.Price)
}
