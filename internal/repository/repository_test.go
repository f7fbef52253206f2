package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// exerciseRepository corre el mismo contrato sobre cualquier backend
func exerciseRepository(t *testing.T, repo KeyValueRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Get(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, repo.Put(ctx, "cart", []byte(`[{"id":1,"quantity":2}]`)))
	data, err := repo.Get(ctx, "cart")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":1,"quantity":2}]`, string(data))

	require.NoError(t, repo.Put(ctx, "cart", []byte(`[]`)))
	data, err = repo.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	require.NoError(t, repo.Delete(ctx, "cart"))
	_, err = repo.Get(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)

	// borrar dos veces no falla
	require.NoError(t, repo.Delete(ctx, "cart"))
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	exerciseRepository(t, repo)
	require.Empty(t, repo.items)
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, repo.Put(ctx, "k", value))
	value[0] = 'z'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestFileRepository(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)
	exerciseRepository(t, repo)
}

func TestFileRepository_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "session/user", []byte(`{}`)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "session%2Fuser.json", entries[0].Name())
}

func TestFileRepository_HonorsCanceledContext(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Put(ctx, "k", []byte("v")), context.Canceled)
}

func TestRedisRepository(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := NewRedisRepository(client, "storefront:")
	exerciseRepository(t, repo)

	require.NoError(t, repo.Put(context.Background(), "search.recent", []byte(`["phone"]`)))
	require.True(t, mr.Exists("storefront:search.recent"))
}

func TestMongoRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	collection := client.Database("storefront_test").Collection("kv_" + time.Now().Format("150405.000000"))
	defer collection.Drop(context.Background())

	exerciseRepository(t, NewMongoRepository(collection))
}
