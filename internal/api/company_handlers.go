package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/middleware"
	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/service"
)

// ListCompanies handles GET /api/v1/companies
func (h *Handlers) ListCompanies(c *gin.Context) {
	companies, err := h.Companies.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	c.JSON(http.StatusOK, companies)
}

// CreateCompany handles POST /api/v1/companies
func (h *Handlers) CreateCompany(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "name is required")
		return
	}

	identity := middleware.CurrentIdentity(c)
	company, err := h.Companies.Create(c.Request.Context(), identity, req.Name)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany handles PATCH /api/v1/companies/:id
func (h *Handlers) UpdateCompany(c *gin.Context) {
	var upd service.CompanyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	identity := middleware.CurrentIdentity(c)
	company, err := h.Companies.Update(c.Request.Context(), identity, c.Param("id"), upd)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/v1/companies/:id
func (h *Handlers) DeleteCompany(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if err := h.Companies.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}
