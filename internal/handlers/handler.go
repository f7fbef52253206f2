package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/deals"
	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/storefront"
)

const (
	defaultPage         = 1
	defaultPageSize     = 20
	maxPageSize         = 100
	defaultRelatedLimit = 4
)

// Handler expone el Engine por HTTP. El Engine debe estar inicializado.
type Handler struct {
	Engine *storefront.Engine
	Logger logger.Logger
}

func NewHandler(engine *storefront.Engine, log logger.Logger) *Handler {
	return &Handler{Engine: engine, Logger: logger.OrNoOp(log)}
}

// Estructuras para respuestas
type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type ProductListResponse struct {
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Total    int                  `json:"total"`
	Products []models.ProductView `json:"products"`
}

// --- Métodos auxiliares ---

// parseID lee un id entero de la ruta; responde 400 si no lo es
func (h *Handler) parseID(c *gin.Context, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}

// getPaginationParams obtiene y valida los parámetros de paginación
func (h *Handler) getPaginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return page, pageSize
}

// buildCriteria arma los criterios a partir de query params
func (h *Handler) buildCriteria(c *gin.Context) catalog.FilterCriteria {
	criteria := catalog.DefaultCriteria()
	criteria.SearchQuery = c.Query("q")

	if cat := c.Query("category"); cat != "" {
		criteria.Category = cat
	}
	if minPrice, err := strconv.ParseInt(c.Query("min_price"), 10, 64); err == nil && minPrice >= 0 {
		criteria.PriceRange.Min = minPrice
	}
	if maxPrice, err := strconv.ParseInt(c.Query("max_price"), 10, 64); err == nil && maxPrice >= 0 {
		criteria.PriceRange.Max = maxPrice
	}
	criteria.SortKey = catalog.ParseSortKey(c.Query("sort"))

	return criteria
}

// lookupStatus traduce los errores de búsqueda a 404
func (h *Handler) lookupStatus(err error) int {
	if errors.Is(err, catalog.ErrProductNotFound) || errors.Is(err, deals.ErrDealNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := h.lookupStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("Request failed", map[string]interface{}{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		c.JSON(status, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
