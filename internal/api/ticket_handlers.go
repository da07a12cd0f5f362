package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/middleware"
	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/service"
)

// ListTickets handles GET /api/v1/tickets
func (h *Handlers) ListTickets(c *gin.Context) {
	filter, err := ticketFilterFromQuery(c)
	if err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid date filter, use YYYY-MM-DD")
		return
	}

	identity := middleware.CurrentIdentity(c)
	tickets, err := h.Tickets.List(c.Request.Context(), identity, filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, tickets)
}

// CreateTicket handles POST /api/v1/tickets
func (h *Handlers) CreateTicket(c *gin.Context) {
	var in service.CreateTicketInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	identity := middleware.CurrentIdentity(c)
	t, err := h.Tickets.Create(c.Request.Context(), identity, in)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTicket handles GET /api/v1/tickets/:id
func (h *Handlers) GetTicket(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	t, err := h.Tickets.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTicket handles PATCH /api/v1/tickets/:id
func (h *Handlers) UpdateTicket(c *gin.Context) {
	var upd models.TicketUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	identity := middleware.CurrentIdentity(c)
	t, err := h.Tickets.Update(c.Request.Context(), identity, c.Param("id"), upd)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTicket handles DELETE /api/v1/tickets/:id
func (h *Handlers) DeleteTicket(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if err := h.Tickets.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}

// ClearTickets handles DELETE /api/v1/tickets
func (h *Handlers) ClearTickets(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	n, err := h.Tickets.Clear(c.Request.Context(), identity)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
