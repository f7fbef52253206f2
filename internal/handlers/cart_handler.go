package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
)

type addToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GET /v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Cart())
}

// POST /v1/cart/items
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snapshot, err := h.Engine.AddToCart(req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// PATCH /v1/cart/items/:id; cantidad <= 0 elimina la línea, más de
// cart.MaxLineQuantity responde 400
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if *req.Quantity > cart.MaxLineQuantity {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: cart.ErrQuantityTooLarge.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Engine.SetCartQuantity(id, *req.Quantity))
}

// DELETE /v1/cart/items/:id
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.Engine.RemoveFromCart(id))
}

// DELETE /v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.ClearCart())
}
