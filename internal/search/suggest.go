package search

import (
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

// Topes por tipo de sugerencia
const (
	MaxProductSuggestions  = 8
	MaxBrandSuggestions    = 3
	MaxCategorySuggestions = 3
)

// Kind indica cómo debe mostrar la UI la sugerencia
type Kind string

const (
	KindProduct  Kind = "product"
	KindBrand    Kind = "brand"
	KindCategory Kind = "category"
	KindRecent   Kind = "recent"
)

// Suggestion es un candidato de búsqueda
type Suggestion struct {
	Kind      Kind   `json:"type"`
	Text      string `json:"text"`
	ProductID int    `json:"id,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Source es lo que el motor necesita del catálogo
type Source interface {
	All() []models.Product
	Brands() []string
	CategoryIDs() []string
}

// Engine genera sugerencias sobre el catálogo. No hace debounce: el que
// llama debe usar un Debouncer antes de invocar Suggest en cada tecla.
type Engine struct {
	source  Source
	history *History
}

func NewEngine(source Source, history *History) *Engine {
	if source == nil || history == nil {
		panic("search: engine requires a catalog source and a history")
	}
	return &Engine{source: source, history: history}
}

// History expone el historial del motor
func (e *Engine) History() *History {
	return e.history
}

// Suggest es síncrono. Query vacío devuelve el historial reciente.
func (e *Engine) Suggest(query string) []Suggestion {
	query = strings.TrimSpace(query)

	if query == "" {
		recent := e.history.Entries()
		out := make([]Suggestion, 0, len(recent))
		for _, r := range recent {
			out = append(out, Suggestion{Kind: KindRecent, Text: r})
		}
		return out
	}

	out := make([]Suggestion, 0, MaxProductSuggestions+MaxBrandSuggestions+MaxCategorySuggestions)

	products := 0
	for _, p := range e.source.All() {
		if products == MaxProductSuggestions {
			break
		}
		if catalog.MatchesText(query, p.Name, p.Brand, p.Category) {
			out = append(out, Suggestion{
				Kind:      KindProduct,
				Text:      p.Name,
				ProductID: p.ID,
				Brand:     p.Brand,
				Category:  p.Category,
			})
			products++
		}
	}

	out = appendLabels(out, KindBrand, query, e.source.Brands(), MaxBrandSuggestions)
	out = appendLabels(out, KindCategory, query, e.source.CategoryIDs(), MaxCategorySuggestions)
	return out
}

func appendLabels(out []Suggestion, kind Kind, query string, labels []string, limit int) []Suggestion {
	n := 0
	for _, l := range labels {
		if n == limit {
			break
		}
		if catalog.MatchesText(query, l) {
			out = append(out, Suggestion{Kind: kind, Text: l})
			n++
		}
	}
	return out
}

// Select registra la sugerencia elegida en el historial
func (e *Engine) Select(s Suggestion) {
	e.history.Add(s.Text)
}

// Commit registra un texto libre enviado desde la caja de búsqueda
func (e *Engine) Commit(text string) {
	e.history.Add(text)
}
