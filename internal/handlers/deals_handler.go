package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/deals"
	"storefront/internal/models"
)

type DealResponse struct {
	models.Deal
	Remaining string               `json:"remaining"`
	Items     []models.ProductView `json:"items,omitempty"`
}

// GET /v1/deals
func (h *Handler) GetDeals(c *gin.Context) {
	list := h.Engine.Deals()
	out := make([]DealResponse, 0, len(list))
	for _, d := range list {
		remaining, err := h.Engine.RemainingTime(d.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		out = append(out, DealResponse{Deal: d, Remaining: remaining})
	}

	c.JSON(http.StatusOK, gin.H{"deals": out})
}

// GET /v1/deals/:id
func (h *Handler) GetDeal(c *gin.Context) {
	id, ok := h.parseID(c, "deal")
	if !ok {
		return
	}

	deal, products, err := h.Engine.Deal(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	remaining, err := h.Engine.RemainingTime(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, DealResponse{Deal: deal, Remaining: remaining, Items: models.Views(products)})
}

// GET /v1/deals/stream (server-sent events)
// La suscripción vive lo que dure la request.
func (h *Handler) StreamDeals(c *gin.Context) {
	updates := make(chan deals.Update, 1)
	cancel := h.Engine.WatchDeals(func(u deals.Update) {
		// sólo interesa la última foto
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- u:
		default:
		}
	})
	defer cancel()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case u := <-updates:
			c.SSEvent("countdown", u)
			return true
		}
	})
}
