package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound indica que la clave no existe en el backend
var ErrKeyNotFound = errors.New("key not found")

// KeyValueRepository es el contrato mínimo que necesita el Persistent Store.
// Cada backend guarda el valor ya serializado; no interpreta el contenido.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
