package cart

import "storefront/internal/models"

func itemCount(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func subtotal(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

func originalTotal(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		price := l.OriginalPrice
		if price < l.Price {
			price = l.Price
		}
		total += price * int64(l.Quantity)
	}
	return total
}

// DeliveryCharge: gratis desde FreeDeliveryThreshold, carrito vacío no paga envío
func DeliveryCharge(subtotal int64, empty bool) int64 {
	if empty || subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// Summarize calcula todos los agregados a partir de lines
func Summarize(lines []models.CartLine) models.CartSnapshot {
	if lines == nil {
		lines = []models.CartLine{}
	}

	sub := subtotal(lines)
	orig := originalTotal(lines)
	delivery := DeliveryCharge(sub, len(lines) == 0)

	var shortfall int64
	if len(lines) > 0 && sub < FreeDeliveryThreshold {
		shortfall = FreeDeliveryThreshold - sub
	}

	return models.CartSnapshot{
		Lines:                 lines,
		ItemCount:             itemCount(lines),
		Subtotal:              sub,
		OriginalTotal:         orig,
		Savings:               orig - sub,
		DeliveryCharge:        delivery,
		Total:                 sub + delivery,
		FreeDeliveryShortfall: shortfall,
	}
}
