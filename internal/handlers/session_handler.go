package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GET /v1/session
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Session())
}

// POST /v1/session/login
// Las credenciales inválidas responden 200 con {success:false, error}
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Engine.Login(c.Request.Context(), req.Email, req.Password))
}

// POST /v1/session/signup
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Engine.Signup(c.Request.Context(), req))
}

// POST /v1/session/logout
func (h *Handler) Logout(c *gin.Context) {
	h.Engine.Logout(c.Request.Context())
	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// PATCH /v1/session/profile; un cuerpo sin campos responde 400
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no profile fields to update"})
		return
	}

	user, err := h.Engine.UpdateProfile(update)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /v1/session/error
func (h *Handler) ClearAuthError(c *gin.Context) {
	h.Engine.ClearAuthError()
	c.JSON(http.StatusOK, h.Engine.Session())
}
