// Package cart implementa el reducer del carrito. Los totales se derivan
// siempre de la lista de líneas; sólo las líneas se persisten.
package cart

import (
	"fmt"
	"slices"
	"sync"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/storage"
)

// Reglas de envío del storefront
const (
	FreeDeliveryThreshold int64 = 500
	StandardDeliveryFee   int64 = 50
)

// MaxLineQuantity acota la cantidad de una línea; mantiene price × quantity
// lejos del desborde de int64
const MaxLineQuantity = 99

var ErrQuantityTooLarge = fmt.Errorf("quantity exceeds %d per product", MaxLineQuantity)

type Cart struct {
	mu     sync.Mutex
	lines  []models.CartLine
	store  *storage.Store
	logger logger.Logger
}

// New crea un carrito vacío; store puede ser nil (sin persistencia)
func New(store *storage.Store, log logger.Logger) *Cart {
	return &Cart{
		lines:  []models.CartLine{},
		store:  store,
		logger: logger.OrNoOp(log),
	}
}

// Hydrate carga las líneas persistidas una sola vez al iniciar. Se asignan
// directamente (no se repite Add por línea) y sólo si la lista guardada
// no está vacía.
func (c *Cart) Hydrate() {
	if c.store == nil {
		return
	}

	saved := storage.Load(c.store, storage.KeyCart, []models.CartLine{})
	lines := normalize(saved)
	if len(lines) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = lines
	c.logger.Info("Cart restored", map[string]interface{}{
		"lines":      len(lines),
		"item_count": itemCount(lines),
	})
}

// normalize fusiona ids repetidos, descarta cantidades no positivas y
// recorta a MaxLineQuantity
func normalize(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	pos := make(map[int]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		l.Quantity = min(l.Quantity, MaxLineQuantity)
		if i, ok := pos[l.ProductID]; ok {
			out[i].Quantity = min(out[i].Quantity+l.Quantity, MaxLineQuantity)
			continue
		}
		pos[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

// Add suma 1 si el producto ya está (sin pasar de MaxLineQuantity); si no,
// agrega una línea al final
func (c *Cart) Add(p models.Product) models.CartSnapshot {
	return c.apply("add", func(lines []models.CartLine) []models.CartLine {
		if i := indexOf(lines, p.ID); i >= 0 {
			lines[i].Quantity = min(lines[i].Quantity+1, MaxLineQuantity)
			return lines
		}
		return append(lines, models.LineFromProduct(p))
	})
}

// SetQuantity asigna la cantidad absoluta; quantity <= 0 elimina la línea y
// una cantidad mayor a MaxLineQuantity se recorta
func (c *Cart) SetQuantity(productID, quantity int) models.CartSnapshot {
	return c.apply("set_quantity", func(lines []models.CartLine) []models.CartLine {
		i := indexOf(lines, productID)
		if i < 0 {
			return lines
		}
		if quantity <= 0 {
			return slices.Delete(lines, i, i+1)
		}
		lines[i].Quantity = min(quantity, MaxLineQuantity)
		return lines
	})
}

// Remove elimina la línea; no hace nada si no existe
func (c *Cart) Remove(productID int) models.CartSnapshot {
	return c.apply("remove", func(lines []models.CartLine) []models.CartLine {
		if i := indexOf(lines, productID); i >= 0 {
			return slices.Delete(lines, i, i+1)
		}
		return lines
	})
}

// Clear vacía el carrito
func (c *Cart) Clear() models.CartSnapshot {
	return c.apply("clear", func([]models.CartLine) []models.CartLine {
		return []models.CartLine{}
	})
}

// apply ejecuta la transición bajo lock, persiste y devuelve el snapshot
func (c *Cart) apply(op string, transition func([]models.CartLine) []models.CartLine) models.CartSnapshot {
	c.mu.Lock()
	c.lines = transition(slices.Clone(c.lines))
	if c.lines == nil {
		c.lines = []models.CartLine{}
	}
	lines := slices.Clone(c.lines)
	// se persiste bajo lock: las escrituras siguen el orden de las transiciones
	if c.store != nil {
		c.store.Save(storage.KeyCart, lines)
	}
	c.mu.Unlock()

	c.logger.Debug("Cart updated", map[string]interface{}{
		"op":    op,
		"lines": len(lines),
	})
	return Summarize(lines)
}

// Snapshot devuelve las líneas con los agregados recalculados
func (c *Cart) Snapshot() models.CartSnapshot {
	return Summarize(c.Lines())
}

// Lines devuelve una copia de las líneas en orden de inserción
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// Quantity devuelve la cantidad del producto (0 si no está)
func (c *Cart) Quantity(productID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.lines, productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Contains indica si el producto tiene línea
func (c *Cart) Contains(productID int) bool {
	return c.Quantity(productID) > 0
}

// ItemCount es Σquantity
func (c *Cart) ItemCount() int {
	return itemCount(c.Lines())
}

// Subtotal es Σ(price × quantity)
func (c *Cart) Subtotal() int64 {
	return subtotal(c.Lines())
}

func indexOf(lines []models.CartLine, productID int) int {
	return slices.IndexFunc(lines, func(l models.CartLine) bool {
		return l.ProductID == productID
	})
}
