// Package storage es el espejo persistente entre sesiones: guarda valores JSON
// por clave y nunca propaga errores. El estado en memoria es la fuente de verdad.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/logger"
	"storefront/internal/repository"
)

// Claves persistidas; cada componente es dueño de una sola
const (
	KeyCart           = "cart"
	KeySessionUser    = "session.user"
	KeySessionToken   = "session.token"
	KeyRecentSearches = "search.recent"
)

const defaultTimeout = 3 * time.Second

type Store struct {
	repo    repository.KeyValueRepository
	logger  logger.Logger
	timeout time.Duration
}

// New crea el Store; timeout <= 0 usa el valor por defecto
func New(repo repository.KeyValueRepository, log logger.Logger, timeout time.Duration) *Store {
	if repo == nil {
		panic("storage: nil repository")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{
		repo:    repo,
		logger:  logger.OrNoOp(log),
		timeout: timeout,
	}
}

// Save serializa value y lo escribe bajo key
func (s *Store) Save(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Error encoding value for storage", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Put(ctx, key, data); err != nil {
		s.logger.Error("Error saving to storage", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	s.logger.Debug("Saved to storage", map[string]interface{}{
		"key":   key,
		"bytes": len(data),
	})
}

// Remove elimina key
func (s *Store) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.Error("Error removing from storage", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// read devuelve los bytes crudos y si la clave existía
func (s *Store) read(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			s.logger.Error("Error reading from storage", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return data, true
}

// Load lee key y lo deserializa; devuelve def si falta o si está corrupto
func Load[T any](s *Store, key string, def T) T {
	value, ok := Lookup[T](s, key)
	if !ok {
		return def
	}
	return value
}

// Lookup es como Load pero informa si hubo un valor válido
func Lookup[T any](s *Store, key string) (T, bool) {
	var value T

	data, ok := s.read(key)
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("Discarding unreadable stored value", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		var zero T
		return zero, false
	}

	return value, true
}
