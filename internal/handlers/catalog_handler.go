package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// GET /v1/products
func (h *Handler) GetProducts(c *gin.Context) {
	products := h.Engine.Query(h.buildCriteria(c))
	page, pageSize := h.getPaginationParams(c)

	// se compara antes de multiplicar: un page enorme desborda int
	start := len(products)
	if page-1 <= len(products)/pageSize {
		start = min((page-1)*pageSize, len(products))
	}
	end := min(start+pageSize, len(products))

	c.JSON(http.StatusOK, ProductListResponse{
		Page:     page,
		PageSize: pageSize,
		Total:    len(products),
		Products: models.Views(products[start:end]),
	})
}

// GET /v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.Engine.Product(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, product.View())
}

// GET /v1/products/:id/related?limit=4
func (h *Handler) GetRelatedProducts(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRelatedLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}

	related, err := h.Engine.Related(id, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": models.Views(related)})
}

// GET /v1/categories
func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.Engine.Categories()})
}
