package models

// CartLine guarda lo necesario para mostrar la línea sin volver al catálogo
type CartLine struct {
	ProductID     int    `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	Brand         string `json:"brand"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	FastDelivery  bool   `json:"fast_delivery"`
	Quantity      int    `json:"quantity"`
}

// LineFromProduct crea la línea inicial (cantidad 1) para un producto
func LineFromProduct(p Product) CartLine {
	return CartLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Image:         p.Image,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		FastDelivery:  p.FastDelivery,
		Quantity:      1,
	}
}

// LineTotal es price × quantity
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// CartSnapshot es la lista de líneas más los agregados derivados.
// Los agregados se recalculan en cada lectura y nunca se persisten.
type CartSnapshot struct {
	Lines                 []CartLine `json:"lines"`
	ItemCount             int        `json:"item_count"`
	Subtotal              int64      `json:"subtotal"`
	OriginalTotal         int64      `json:"original_total"`
	Savings               int64      `json:"savings"`
	DeliveryCharge        int64      `json:"delivery_charge"`
	Total                 int64      `json:"total"`
	FreeDeliveryShortfall int64      `json:"free_delivery_shortfall"`
}
