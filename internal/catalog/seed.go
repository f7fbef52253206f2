package catalog

import (
	"time"

	"storefront/internal/models"
)

// DefaultCategories es el conjunto fijo de categorías, con "all" primero
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: models.CategoryAll, Name: "All Categories", Icon: "🛍️"},
		{ID: "electronics", Name: "Electronics", Icon: "📱"},
		{ID: "fashion", Name: "Fashion", Icon: "👕"},
		{ID: "home", Name: "Home & Kitchen", Icon: "🏠"},
		{ID: "books", Name: "Books", Icon: "📚"},
		{ID: "sports", Name: "Sports & Fitness", Icon: "⚽"},
		{ID: "beauty", Name: "Beauty & Personal Care", Icon: "💄"},
		{ID: "toys", Name: "Toys & Games", Icon: "🧸"},
		{ID: "automotive", Name: "Automotive", Icon: "🚗"},
	}
}

// SeedData es el catálogo de demostración; las promociones terminan
// 24h y 6h después de now
func SeedData(now time.Time) Data {
	return Data{
		Categories: DefaultCategories(),
		Products:   seedProducts(),
		Deals: []models.Deal{
			{ID: 1, Title: "Deal of the Day", ProductIDs: []int{1, 4, 6, 8}, EndTime: now.Add(24 * time.Hour)},
			{ID: 2, Title: "Lightning Deals", ProductIDs: []int{2, 5, 7, 9}, EndTime: now.Add(6 * time.Hour)},
		},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "iPhone 15 Pro Max", Brand: "Apple", Category: "electronics",
			Price: 134900, OriginalPrice: 159900, Rating: 4.5, Reviews: 2847,
			Image:       "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400",
			Description: "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system.",
			Specifications: map[string]string{
				"Display": "6.7-inch Super Retina XDR",
				"Chip":    "A17 Pro",
				"Storage": "256GB",
			},
			Features: []string{"5G Ready", "Face ID", "Wireless Charging", "Water Resistant"},
			InStock:  true, FastDelivery: true,
		},
		{
			ID: 2, Name: "Samsung Galaxy S24 Ultra", Brand: "Samsung", Category: "electronics",
			Price: 124999, OriginalPrice: 134999, Rating: 4.4, Reviews: 1923,
			Image:       "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=400",
			Description: "Premium Android smartphone with S Pen, advanced AI features, and exceptional camera.",
			Specifications: map[string]string{
				"Display":   "6.8-inch Dynamic AMOLED 2X",
				"Processor": "Snapdragon 8 Gen 3",
				"Battery":   "5000mAh",
			},
			Features: []string{"S Pen Included", "5G Ready", "AI Photography", "Fast Charging"},
			InStock:  true, FastDelivery: true,
		},
		{
			ID: 3, Name: "MacBook Air M3", Brand: "Apple", Category: "electronics",
			Price: 114900, OriginalPrice: 124900, Rating: 4.6, Reviews: 1456,
			Image:       "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=400",
			Description: "Ultra-thin laptop with M3 chip, all-day battery life, and stunning Retina display.",
			Specifications: map[string]string{
				"Chip":    "Apple M3",
				"Memory":  "8GB Unified Memory",
				"Storage": "256GB SSD",
			},
			Features: []string{"Touch ID", "Backlit Keyboard", "Force Touch Trackpad", "Thunderbolt Ports"},
			InStock:  true, FastDelivery: false,
		},
		{
			ID: 4, Name: "Nike Air Force 1", Brand: "Nike", Category: "fashion",
			Price: 7495, OriginalPrice: 8995, Rating: 4.3, Reviews: 3421,
			Image:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400",
			Description: "Classic basketball shoe with timeless design and superior comfort.",
			Features:    []string{"Air Cushioning", "Durable Construction", "Classic Design"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 5, Name: "Levi's 511 Slim Jeans", Brand: "Levi's", Category: "fashion",
			Price: 2999, OriginalPrice: 3999, Rating: 4.2, Reviews: 2156,
			Image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400",
			Description: "Slim fit jeans with classic 5-pocket styling and comfortable stretch.",
			Features:    []string{"Slim Fit", "Stretch Denim", "5-Pocket Styling"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 6, Name: "Instant Pot Duo 7-in-1", Brand: "Instant Pot", Category: "home",
			Price: 8999, OriginalPrice: 12999, Rating: 4.5, Reviews: 4567,
			Image:       "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
			Description: "Multi-functional electric pressure cooker that replaces 7 kitchen appliances.",
			Features:    []string{"7-in-1 Functionality", "Smart Programs", "Safety Features"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 7, Name: "Atomic Habits by James Clear", Brand: "Avery Publishing", Category: "books",
			Price: 399, OriginalPrice: 599, Rating: 4.7, Reviews: 8934,
			Image:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400",
			Description: "A proven framework for improving every day through tiny changes in your habits.",
			Features:    []string{"Bestseller", "Practical Strategies", "Easy to Read"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 8, Name: "Yoga Mat Premium", Brand: "YogaLife", Category: "sports",
			Price: 1299, OriginalPrice: 1999, Rating: 4.4, Reviews: 1876,
			Image:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400",
			Description: "High-quality yoga mat with superior grip and cushioning for all yoga practices.",
			Features:    []string{"Non-Slip Surface", "Extra Thick", "Carrying Strap"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 9, Name: "Lakme Absolute Skin Gloss", Brand: "Lakme", Category: "beauty",
			Price: 899, OriginalPrice: 1200, Rating: 4.1, Reviews: 2341,
			Image:       "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=400",
			Description: "Lightweight foundation with natural finish and long-lasting coverage.",
			Features:    []string{"Natural Finish", "Long Lasting", "Lightweight"},
			InStock:     true, FastDelivery: true,
		},
		{
			ID: 10, Name: "LEGO Creator 3-in-1 Deep Sea Creatures", Brand: "LEGO", Category: "toys",
			Price: 2499, OriginalPrice: 2999, Rating: 4.6, Reviews: 987,
			Image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400",
			Description: "Build and rebuild 3 different sea creatures with this creative LEGO set.",
			Features:    []string{"3-in-1 Design", "Creative Building", "Ages 7+"},
			InStock:     true, FastDelivery: true,
		},
	}
}
