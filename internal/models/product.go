package models

import "math"

// CategoryAll es el centinela que desactiva el filtro por categoría
const CategoryAll = "all"

// Category representa una categoría fija del catálogo
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Product representa un producto del catálogo; inmutable durante la sesión
type Product struct {
	ID             int               `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Brand          string            `json:"brand" yaml:"brand"`
	Category       string            `json:"category" yaml:"category"`
	Price          int64             `json:"price" yaml:"price"`
	OriginalPrice  int64             `json:"original_price" yaml:"originalPrice"`
	Rating         float64           `json:"rating" yaml:"rating"`
	Reviews        int               `json:"reviews" yaml:"reviews"`
	Image          string            `json:"image,omitempty" yaml:"image,omitempty"`
	Images         []string          `json:"images,omitempty" yaml:"images,omitempty"`
	Description    string            `json:"description" yaml:"description"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty" yaml:"features,omitempty"`
	InStock        bool              `json:"in_stock" yaml:"inStock"`
	FastDelivery   bool              `json:"fast_delivery" yaml:"fastDelivery"`
}

// DiscountPercent se deriva siempre de Price y OriginalPrice
func (p Product) DiscountPercent() int {
	return DiscountPercent(p.OriginalPrice, p.Price)
}

// OnSale indica si el precio actual es menor al original
func (p Product) OnSale() bool {
	return p.OriginalPrice > p.Price
}

// Savings es la diferencia entre precio original y actual (nunca negativa)
func (p Product) Savings() int64 {
	if !p.OnSale() {
		return 0
	}
	return p.OriginalPrice - p.Price
}

// DiscountPercent calcula round((original-price)/original*100), acotado a 0..100
func DiscountPercent(original, price int64) int {
	if original <= 0 || price >= original {
		return 0
	}
	if price < 0 {
		price = 0
	}
	return int(math.Round(float64(original-price) / float64(original) * 100))
}

// ProductView agrega los campos derivados para serializar hacia la UI
type ProductView struct {
	Product
	Discount int `json:"discount"`
}

// View arma el ProductView de p
func (p Product) View() ProductView {
	return ProductView{Product: p, Discount: p.DiscountPercent()}
}

// Views convierte una lista de productos
func Views(products []Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, p.View())
	}
	return out
}
