package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/search"
)

type commitSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// GET /v1/search/suggestions?q=
func (h *Handler) GetSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.Engine.Suggest(c.Query("q"))})
}

// POST /v1/search/select
func (h *Handler) SelectSuggestion(c *gin.Context) {
	var s search.Suggestion
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(s.Text) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text is required"})
		return
	}

	h.Engine.SelectSuggestion(s)
	c.JSON(http.StatusOK, gin.H{"recent": h.Engine.RecentSearches()})
}

// POST /v1/search/commit
func (h *Handler) CommitSearch(c *gin.Context) {
	var req commitSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.Engine.CommitSearch(req.Query)
	c.JSON(http.StatusOK, gin.H{"recent": h.Engine.RecentSearches()})
}

// GET /v1/search/recent
func (h *Handler) GetRecentSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recent": h.Engine.RecentSearches()})
}

// DELETE /v1/search/recent
func (h *Handler) ClearRecentSearches(c *gin.Context) {
	h.Engine.ClearRecentSearches()
	c.JSON(http.StatusOK, SuccessResponse{Message: "recent searches cleared"})
}
