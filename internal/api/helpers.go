package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/repository"
	"github.com/tickdesk/tickdesk/internal/service"
)

// serviceError maps service-layer sentinels onto registered API error
// codes. Anything unrecognized is logged and reported as internal.
func (h *Handlers) serviceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, ve.Error())
	case errors.Is(err, service.ErrForbidden):
		apierrors.Error(c, apierrors.CodeForbidden)
	case errors.Is(err, service.ErrNotFound):
		apierrors.Error(c, apierrors.CodeNotFound)
	case errors.Is(err, service.ErrConflict):
		apierrors.Error(c, apierrors.CodeConflict)
	case errors.Is(err, service.ErrInvalidTransition):
		apierrors.Error(c, apierrors.CodeInvalidTransition)
	case errors.Is(err, service.ErrInvalidCredentials):
		apierrors.Error(c, apierrors.CodeUnauthorized)
	default:
		h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		apierrors.Error(c, apierrors.CodeInternalError)
	}
}

// ticketFilterFromQuery builds the repository filter from the query
// string. Dates use YYYY-MM-DD; dueTo is pushed to end of day so the
// range is inclusive.
func ticketFilterFromQuery(c *gin.Context) (repository.TicketFilter, error) {
	filter := repository.TicketFilter{
		AssignedTo: c.Query("assignedTo"),
		Company:    c.Query("company"),
		Paid:       c.Query("paid"),
		Status:     c.Query("status"),
	}
	if v := c.Query("dueFrom"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, err
		}
		filter.DueFrom = &t
	}
	if v := c.Query("dueTo"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DueTo = &end
	}
	return filter, nil
}
