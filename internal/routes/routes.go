package routes

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, h *handlers.Handler) {
	v1 := router.Group("/v1")
	{
		v1.GET("/products", h.GetProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/related", h.GetRelatedProducts)
		v1.GET("/categories", h.GetCategories)

		v1.GET("/search/suggestions", h.GetSuggestions)
		v1.POST("/search/select", h.SelectSuggestion)
		v1.POST("/search/commit", h.CommitSearch)
		v1.GET("/search/recent", h.GetRecentSearches)
		v1.DELETE("/search/recent", h.ClearRecentSearches)

		v1.GET("/cart", h.GetCart)
		v1.DELETE("/cart", h.ClearCart)
		v1.POST("/cart/items", h.AddCartItem)
		v1.PATCH("/cart/items/:id", h.UpdateCartItem)
		v1.DELETE("/cart/items/:id", h.RemoveCartItem)

		v1.GET("/session", h.GetSession)
		v1.POST("/session/login", h.Login)
		v1.POST("/session/signup", h.Signup)
		v1.POST("/session/logout", h.Logout)
		v1.PATCH("/session/profile", h.UpdateProfile)
		v1.DELETE("/session/error", h.ClearAuthError)

		v1.GET("/deals", h.GetDeals)
		v1.GET("/deals/stream", h.StreamDeals)
		v1.GET("/deals/:id", h.GetDeal)
	}
}
