package search

import (
	"slices"
	"strings"
	"sync"

	"storefront/internal/storage"
)

// MaxRecentSearches es el tope del historial
const MaxRecentSearches = 10

// History es la lista de búsquedas recientes, la más nueva primero y sin repetidos
type History struct {
	mu      sync.Mutex
	entries []string
	store   *storage.Store
}

// NewHistory crea un historial vacío; store puede ser nil (sin persistencia)
func NewHistory(store *storage.Store) *History {
	return &History{
		entries: []string{},
		store:   store,
	}
}

// Hydrate carga el historial persistido, normalizándolo (dedup + tope)
func (h *History) Hydrate() {
	if h.store == nil {
		return
	}
	saved := storage.Load(h.store, storage.KeyRecentSearches, []string{})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = h.entries[:0]
	for _, s := range saved {
		h.entries = appendDistinct(h.entries, s)
	}
	if len(h.entries) > MaxRecentSearches {
		h.entries = h.entries[:MaxRecentSearches]
	}
}

func appendDistinct(entries []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || slices.Contains(entries, s) {
		return entries
	}
	return append(entries, s)
}

// Add mueve term al frente (o lo inserta), recorta al tope y persiste
func (h *History) Add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	h.mu.Lock()
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, term)
	for _, e := range h.entries {
		if e != term {
			next = append(next, e)
		}
	}
	if len(next) > MaxRecentSearches {
		next = next[:MaxRecentSearches]
	}
	h.entries = next
	// se persiste bajo lock: el store queda con la última versión en memoria
	if h.store != nil {
		h.store.Save(storage.KeyRecentSearches, slices.Clone(next))
	}
	h.mu.Unlock()
}

// Entries devuelve una copia, la más reciente primero
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Clear vacía el historial y borra la clave persistida
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []string{}
	if h.store != nil {
		h.store.Remove(storage.KeyRecentSearches)
	}
}
