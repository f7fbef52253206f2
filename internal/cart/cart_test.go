package cart

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

var (
	phone = models.Product{ID: 1, Name: "iPhone 15 Pro Max", Brand: "Apple", Price: 134900, OriginalPrice: 159900, FastDelivery: true}
	book  = models.Product{ID: 7, Name: "Atomic Habits", Brand: "Avery Publishing", Price: 399, OriginalPrice: 599}
	mat   = models.Product{ID: 8, Name: "Yoga Mat Premium", Brand: "YogaLife", Price: 1299, OriginalPrice: 1999}
)

func newCart(t *testing.T) (*Cart, *storage.Store) {
	t.Helper()
	store := storage.New(repository.NewMemoryRepository(), nil, 0)
	return New(store, nil), store
}

func persisted(store *storage.Store) []models.CartLine {
	return storage.Load(store, storage.KeyCart, []models.CartLine(nil))
}

func TestAdd_TwiceMergesIntoOneLine(t *testing.T) {
	c, _ := newCart(t)

	c.Add(book)
	snap := c.Add(book)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, int64(798), snap.Subtotal)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c, _ := newCart(t)

	c.Add(mat)
	c.Add(book)
	c.Add(mat)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 8, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 7, lines[1].ProductID)
}

func TestAdd_SnapshotsRenderFields(t *testing.T) {
	c, _ := newCart(t)

	line := c.Add(phone).Lines[0]
	assert.Equal(t, models.CartLine{
		ProductID: 1, Name: "iPhone 15 Pro Max", Brand: "Apple",
		Price: 134900, OriginalPrice: 159900, FastDelivery: true, Quantity: 1,
	}, line)
}

func TestSetQuantity(t *testing.T) {
	c, _ := newCart(t)
	c.Add(book)
	c.Add(mat)

	snap := c.SetQuantity(7, 5)
	assert.Equal(t, 5, c.Quantity(7))
	assert.Equal(t, 6, snap.ItemCount)
	assert.Equal(t, int64(5*399+1299), snap.Subtotal)

	for _, q := range []int{0, -1, -50} {
		c.Add(book)
		snap = c.SetQuantity(7, q)
		assert.False(t, c.Contains(7), "quantity %d", q)
		assert.Equal(t, 1, snap.ItemCount)
		assert.Equal(t, int64(1299), snap.Subtotal)
	}

	// línea inexistente: no-op
	before := c.Snapshot()
	assert.Equal(t, before, c.SetQuantity(404, 3))
	assert.Equal(t, before, c.SetQuantity(404, 0))
}

func TestQuantityIsCappedPerLine(t *testing.T) {
	c, store := newCart(t)
	c.Add(phone)

	snap := c.SetQuantity(1, math.MaxInt64/100)
	assert.Equal(t, MaxLineQuantity, c.Quantity(1))
	assert.Equal(t, phone.Price*MaxLineQuantity, snap.Subtotal)
	assert.Positive(t, snap.Total)
	assert.Equal(t, MaxLineQuantity, persisted(store)[0].Quantity)

	snap = c.Add(phone)
	assert.Equal(t, MaxLineQuantity, snap.ItemCount)
	assert.Equal(t, phone.Price*MaxLineQuantity, snap.Subtotal)
}

func TestRemoveAndClear(t *testing.T) {
	c, store := newCart(t)
	c.Add(book)
	c.Add(mat)

	snap := c.Remove(7)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 8, snap.Lines[0].ProductID)

	assert.Equal(t, snap, c.Remove(7))

	snap = c.Clear()
	assert.Empty(t, snap.Lines)
	assert.Zero(t, snap.ItemCount)
	assert.Zero(t, snap.Subtotal)
	assert.Equal(t, []models.CartLine{}, persisted(store))
}

func TestEveryTransitionPersistsLines(t *testing.T) {
	c, store := newCart(t)

	c.Add(book)
	assert.Equal(t, c.Lines(), persisted(store))

	c.SetQuantity(7, 3)
	assert.Equal(t, 3, persisted(store)[0].Quantity)

	c.Add(mat)
	c.Remove(7)
	assert.Equal(t, c.Lines(), persisted(store))
}

func TestSubtotalAlwaysMatchesLines(t *testing.T) {
	c, _ := newCart(t)
	ops := []func(){
		func() { c.Add(phone) },
		func() { c.Add(book) },
		func() { c.SetQuantity(1, 3) },
		func() { c.Add(mat) },
		func() { c.Remove(7) },
		func() { c.SetQuantity(8, 0) },
		func() { c.Add(book) },
	}

	for _, op := range ops {
		op()
		snap := c.Snapshot()

		var want int64
		count := 0
		for _, l := range snap.Lines {
			want += l.Price * int64(l.Quantity)
			count += l.Quantity
		}
		assert.Equal(t, want, snap.Subtotal)
		assert.Equal(t, want, c.Subtotal())
		assert.Equal(t, count, c.ItemCount())
	}
}

func TestHydrate_SetsLinesDirectly(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Put(context.Background(), storage.KeyCart, []byte(`[
		{"id":7,"name":"Atomic Habits","price":399,"original_price":599,"quantity":2},
		{"id":8,"name":"Yoga Mat Premium","price":1299,"original_price":1999,"quantity":1}
	]`)))
	store := storage.New(repo, nil, 0)

	c := New(store, nil)
	c.Hydrate()

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, int64(2*399+1299), snap.Subtotal)
	assert.Equal(t, []int{7, 8}, []int{snap.Lines[0].ProductID, snap.Lines[1].ProductID})
}

func TestHydrate_MergesDuplicatesAndDropsInvalid(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Put(context.Background(), storage.KeyCart, []byte(`[
		{"id":7,"price":399,"quantity":1},
		{"id":9,"price":899,"quantity":0},
		{"id":7,"price":399,"quantity":2}
	]`)))

	c := New(storage.New(repo, nil, 0), nil)
	c.Hydrate()

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestHydrate_CapsStoredQuantities(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Put(context.Background(), storage.KeyCart, []byte(`[
		{"id":7,"price":399,"quantity":92233720368547758},
		{"id":8,"price":1299,"quantity":60},
		{"id":8,"price":1299,"quantity":60}
	]`)))

	c := New(storage.New(repo, nil, 0), nil)
	c.Hydrate()

	assert.Equal(t, MaxLineQuantity, c.Quantity(7))
	assert.Equal(t, MaxLineQuantity, c.Quantity(8))
	assert.Equal(t, int64(399+1299)*MaxLineQuantity, c.Subtotal())
}

func TestHydrate_EmptyOrCorruptKeepsInMemoryCart(t *testing.T) {
	for name, raw := range map[string]string{"empty": `[]`, "corrupt": `{oops`} {
		t.Run(name, func(t *testing.T) {
			repo := repository.NewMemoryRepository()
			store := storage.New(repo, nil, 0)
			c := New(store, nil)
			c.Add(book)

			require.NoError(t, repo.Put(context.Background(), storage.KeyCart, []byte(raw)))
			c.Hydrate()

			lines := c.Lines()
			require.Len(t, lines, 1)
			assert.Equal(t, 1, lines[0].Quantity)
		})
	}
}

func TestSummarize_DeliveryAndSavings(t *testing.T) {
	empty := Summarize(nil)
	assert.Zero(t, empty.DeliveryCharge)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.FreeDeliveryShortfall)
	assert.NotNil(t, empty.Lines)

	small := Summarize([]models.CartLine{models.LineFromProduct(book)})
	assert.Equal(t, StandardDeliveryFee, small.DeliveryCharge)
	assert.Equal(t, int64(399+50), small.Total)
	assert.Equal(t, int64(101), small.FreeDeliveryShortfall)
	assert.Equal(t, int64(200), small.Savings)

	line := models.LineFromProduct(mat)
	line.Quantity = 2
	big := Summarize([]models.CartLine{line})
	assert.Zero(t, big.DeliveryCharge)
	assert.Equal(t, int64(2598), big.Total)
	assert.Equal(t, int64(3998), big.OriginalTotal)
	assert.Equal(t, int64(1400), big.Savings)
}

func TestCart_WithoutStore(t *testing.T) {
	c := New(nil, nil)
	c.Hydrate()
	c.Add(book)
	assert.Equal(t, 1, c.ItemCount())
}
