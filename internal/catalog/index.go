package catalog

import (
	"cmp"
	"errors"
	"slices"

	"storefront/internal/cache"
	"storefront/internal/logger"
	"storefront/internal/models"
)

// ErrProductNotFound lo devuelven quienes necesitan un error en vez de (p, false)
var ErrProductNotFound = errors.New("product not found")

// Data es el contenido inmutable del catálogo
type Data struct {
	Categories []models.Category `yaml:"categories"`
	Products   []models.Product  `yaml:"products"`
	Deals      []models.Deal     `yaml:"deals"`
}

// QueryCache memoriza resultados de Query por criterios normalizados
type QueryCache = cache.Cache[[]models.Product]

// Index mantiene la colección inmutable y sus primitivas de consulta
type Index struct {
	categories []models.Category
	products   []models.Product
	deals      []models.Deal
	byID       map[int]int

	cache  *QueryCache
	logger logger.Logger
}

// NewIndex valida data y construye el índice. queryCache puede ser nil.
func NewIndex(data Data, queryCache *QueryCache, log logger.Logger) (*Index, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	idx := &Index{
		categories: slices.Clone(data.Categories),
		products:   slices.Clone(data.Products),
		deals:      slices.Clone(data.Deals),
		byID:       make(map[int]int, len(data.Products)),
		cache:      queryCache,
		logger:     logger.OrNoOp(log),
	}
	for i, p := range idx.products {
		idx.byID[p.ID] = i
	}

	return idx, nil
}

// All devuelve todos los productos en orden de catálogo
func (idx *Index) All() []models.Product {
	return slices.Clone(idx.products)
}

// Categories incluye el centinela "all" si el catálogo lo define
func (idx *Index) Categories() []models.Category {
	return slices.Clone(idx.categories)
}

// Deals devuelve las promociones del catálogo
func (idx *Index) Deals() []models.Deal {
	return slices.Clone(idx.deals)
}

// ByID busca exacto; ok=false si no existe
func (idx *Index) ByID(id int) (models.Product, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return idx.products[i], true
}

// Filter aplica los criterios y mantiene el orden del catálogo
func (idx *Index) Filter(criteria FilterCriteria) []models.Product {
	criteria = criteria.Normalize()

	out := make([]models.Product, 0)
	for _, p := range idx.products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort devuelve una copia ordenada de forma estable; products no se modifica
func Sort(products []models.Product, key SortKey) []models.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []models.Product{}
	}

	var compare func(a, b models.Product) int
	switch ParseSortKey(string(key)) {
	case SortPriceAsc:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		compare = func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		compare = func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortDiscount:
		compare = func(a, b models.Product) int { return cmp.Compare(b.DiscountPercent(), a.DiscountPercent()) }
	case SortNewest:
		compare = func(a, b models.Product) int { return cmp.Compare(b.ID, a.ID) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Sort es el atajo de la función Sort del paquete
func (idx *Index) Sort(products []models.Product, key SortKey) []models.Product {
	return Sort(products, key)
}

// Query = Filter + Sort, memorizado en el caché si hay uno
func (idx *Index) Query(criteria FilterCriteria) []models.Product {
	criteria = criteria.Normalize()

	if idx.cache == nil {
		return Sort(idx.Filter(criteria), criteria.SortKey)
	}

	key := criteria.cacheKey()
	result, hit := idx.cache.GetOrCompute(key, func() []models.Product {
		return Sort(idx.Filter(criteria), criteria.SortKey)
	})
	if !hit {
		idx.logger.Debug("Catalog query cached", map[string]interface{}{
			"key":     key,
			"results": len(result),
		})
	}
	return slices.Clone(result)
}

// RelatedTo devuelve hasta limit productos de la misma categoría, sin incluir product
func (idx *Index) RelatedTo(product models.Product, limit int) []models.Product {
	out := make([]models.Product, 0)
	if limit <= 0 {
		return out
	}

	for _, p := range idx.ByCategory(product.Category, 0) {
		if p.ID == product.ID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// ByCategory devuelve los productos de category; limit <= 0 no limita
func (idx *Index) ByCategory(category string, limit int) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range idx.products {
		if category != models.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Brands devuelve las marcas distintas en orden de aparición
func (idx *Index) Brands() []string {
	return distinct(idx.products, func(p models.Product) string { return p.Brand })
}

// CategoryIDs devuelve las categorías usadas por productos, en orden de aparición
func (idx *Index) CategoryIDs() []string {
	return distinct(idx.products, func(p models.Product) string { return p.Category })
}

// DealByID busca una promoción
func (idx *Index) DealByID(id int) (models.Deal, bool) {
	for _, d := range idx.deals {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deal{}, false
}

// DealProducts resuelve los ids de la promoción, omitiendo los que no existen
func (idx *Index) DealProducts(deal models.Deal) []models.Product {
	out := make([]models.Product, 0, len(deal.ProductIDs))
	for _, id := range deal.ProductIDs {
		if p, ok := idx.ByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func distinct(products []models.Product, field func(models.Product) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
