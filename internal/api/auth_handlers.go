package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
)

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"role":     user.Role,
		"token":    token,
	})
}
