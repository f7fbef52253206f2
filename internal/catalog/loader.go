package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"storefront/internal/logger"
	"storefront/internal/models"
)

// ValidationError representa un dato de catálogo inválido
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// productDocument agrega al producto el campo discount que traen algunos archivos
type productDocument struct {
	models.Product `yaml:",inline"`
	Discount       *int `yaml:"discount,omitempty"`
}

// dealDocument permite endTime absoluto o endsIn relativo al momento de carga
type dealDocument struct {
	models.Deal `yaml:",inline"`
	EndsIn      string `yaml:"endsIn,omitempty"`
}

type catalogDocument struct {
	Categories []models.Category `yaml:"categories"`
	Products   []productDocument `yaml:"products"`
	Deals      []dealDocument    `yaml:"deals"`
}

// LoadFile lee un catálogo YAML. Un discount guardado que no coincide con el
// derivado de los precios se registra como warning y se ignora.
func LoadFile(path string, log logger.Logger) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw, time.Now(), log)
}

// Parse decodifica el YAML; now resuelve los endsIn relativos
func Parse(raw []byte, now time.Time, log logger.Logger) (Data, error) {
	log = logger.OrNoOp(log)

	var doc catalogDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Data{}, fmt.Errorf("parse catalog: %w", err)
	}

	data := Data{
		Categories: doc.Categories,
		Products:   make([]models.Product, 0, len(doc.Products)),
		Deals:      make([]models.Deal, 0, len(doc.Deals)),
	}
	if len(data.Categories) == 0 {
		data.Categories = DefaultCategories()
	}

	for _, pd := range doc.Products {
		p := pd.Product
		if p.OriginalPrice == 0 {
			p.OriginalPrice = p.Price
		}
		if pd.Discount != nil && *pd.Discount != p.DiscountPercent() {
			log.Warn("Stored discount does not match prices, using derived value", map[string]interface{}{
				"product_id": p.ID,
				"stored":     *pd.Discount,
				"derived":    p.DiscountPercent(),
			})
		}
		data.Products = append(data.Products, p)
	}

	for _, dd := range doc.Deals {
		d := dd.Deal
		if dd.EndsIn != "" {
			ttl, err := time.ParseDuration(dd.EndsIn)
			if err != nil {
				return Data{}, &ValidationError{
					Field:   fmt.Sprintf("deals[%d].endsIn", d.ID),
					Message: "invalid duration " + dd.EndsIn,
				}
			}
			d.EndTime = now.Add(ttl)
		}
		data.Deals = append(data.Deals, d)
	}

	if err := Validate(data); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Validate revisa las invariantes del catálogo
func Validate(data Data) error {
	known := make(map[string]struct{}, len(data.Categories))
	for _, c := range data.Categories {
		known[c.ID] = struct{}{}
	}

	seen := make(map[int]struct{}, len(data.Products))
	for _, p := range data.Products {
		field := fmt.Sprintf("products[%d]", p.ID)

		if _, dup := seen[p.ID]; dup {
			return &ValidationError{Field: field, Message: "duplicate product id"}
		}
		seen[p.ID] = struct{}{}

		if p.Name == "" {
			return &ValidationError{Field: field + ".name", Message: "name is required"}
		}
		if p.Price < 0 {
			return &ValidationError{Field: field + ".price", Message: "price cannot be negative"}
		}
		if p.OriginalPrice < p.Price {
			return &ValidationError{Field: field + ".originalPrice", Message: "original price cannot be lower than price"}
		}
		if p.Rating < 0 || p.Rating > 5 {
			return &ValidationError{Field: field + ".rating", Message: "rating must be between 0 and 5"}
		}
		if p.Reviews < 0 {
			return &ValidationError{Field: field + ".reviews", Message: "reviews cannot be negative"}
		}
		if len(known) > 0 {
			if _, ok := known[p.Category]; !ok || p.Category == models.CategoryAll {
				return &ValidationError{Field: field + ".category", Message: "unknown category " + p.Category}
			}
		}
	}

	dealIDs := make(map[int]struct{}, len(data.Deals))
	for _, d := range data.Deals {
		field := fmt.Sprintf("deals[%d]", d.ID)
		if _, dup := dealIDs[d.ID]; dup {
			return &ValidationError{Field: field, Message: "duplicate deal id"}
		}
		dealIDs[d.ID] = struct{}{}
		if d.EndTime.IsZero() {
			return &ValidationError{Field: field + ".endTime", Message: "end time is required"}
		}
	}

	return nil
}
