package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/middleware"
	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/service"
)

// ListUsers handles GET /api/v1/users with an optional ?q= substring
// search on username.
func (h *Handlers) ListUsers(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var (
		users []models.User
		err   error
	)
	if q := c.Query("q"); q != "" {
		users, err = h.Users.Search(c.Request.Context(), identity, q)
	} else {
		users, err = h.Users.List(c.Request.Context(), identity)
	}
	if err != nil {
		h.serviceError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/v1/users
func (h *Handlers) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "username and password are required")
		return
	}

	identity := middleware.CurrentIdentity(c)
	user, err := h.Users.Create(c.Request.Context(), identity, req.Username, req.Password, req.Role)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PATCH /api/v1/users/:id
func (h *Handlers) UpdateUser(c *gin.Context) {
	var upd service.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	identity := middleware.CurrentIdentity(c)
	user, err := h.Users.Update(c.Request.Context(), identity, c.Param("id"), upd)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (h *Handlers) DeleteUser(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if err := h.Users.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
