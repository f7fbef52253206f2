package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/logger"
	"storefront/internal/repository"
)

// failingRepository falla en todas las operaciones
type failingRepository struct{}

var errBackendDown = errors.New("backend down")

func (failingRepository) Get(context.Context, string) ([]byte, error) { return nil, errBackendDown }
func (failingRepository) Put(context.Context, string, []byte) error   { return errBackendDown }
func (failingRepository) Delete(context.Context, string) error        { return errBackendDown }

type item struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

func TestStore_SaveLoadRemove(t *testing.T) {
	s := New(repository.NewMemoryRepository(), nil, 0)

	s.Save(KeyCart, []item{{ID: 1, Quantity: 2}})
	got := Load(s, KeyCart, []item(nil))
	require.Equal(t, []item{{ID: 1, Quantity: 2}}, got)

	s.Remove(KeyCart)
	got = Load(s, KeyCart, []item{{ID: 9, Quantity: 9}})
	assert.Equal(t, []item{{ID: 9, Quantity: 9}}, got)
}

func TestStore_LoadMissingReturnsDefault(t *testing.T) {
	s := New(repository.NewMemoryRepository(), nil, 0)

	assert.Equal(t, []string{"default"}, Load(s, KeyRecentSearches, []string{"default"}))

	_, ok := Lookup[[]string](s, KeyRecentSearches)
	assert.False(t, ok)
}

func TestStore_CorruptValueFallsBackAndWarns(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Put(context.Background(), KeyCart, []byte("{not json")))

	var buf bytes.Buffer
	s := New(repo, logger.NewWithWriter(&buf, logger.LevelDebug), 0)

	got := Load(s, KeyCart, []item{})
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "Discarding unreadable stored value")
}

func TestStore_BackendFailuresNeverPropagate(t *testing.T) {
	var buf bytes.Buffer
	s := New(failingRepository{}, logger.NewWithWriter(&buf, logger.LevelDebug), 0)

	assert.NotPanics(t, func() {
		s.Save(KeyCart, []item{{ID: 1, Quantity: 1}})
		s.Remove(KeyCart)
	})
	assert.Equal(t, "fallback", Load(s, KeySessionToken, "fallback"))

	out := buf.String()
	assert.Contains(t, out, "Error saving to storage")
	assert.Contains(t, out, "Error removing from storage")
	assert.Contains(t, out, "Error reading from storage")
}

func TestStore_UnencodableValueIsLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := repository.NewMemoryRepository()
	s := New(repo, logger.NewWithWriter(&buf, logger.LevelDebug), 0)

	s.Save(KeyCart, make(chan int))

	_, err := repo.Get(context.Background(), KeyCart)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	assert.Contains(t, buf.String(), "Error encoding value for storage")
}

func TestNew_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil, 0) })
}
