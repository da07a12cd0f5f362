package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/middleware"
)

// ReportSummary handles GET /api/v1/reports/summary
func (h *Handlers) ReportSummary(c *gin.Context) {
	filter, err := ticketFilterFromQuery(c)
	if err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid date filter, use YYYY-MM-DD")
		return
	}

	identity := middleware.CurrentIdentity(c)
	summary, err := h.Reports.Summary(c.Request.Context(), identity, filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ReportExport handles GET /api/v1/reports/export and streams an XLSX
// workbook of the filtered ticket set.
func (h *Handlers) ReportExport(c *gin.Context) {
	filter, err := ticketFilterFromQuery(c)
	if err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid date filter, use YYYY-MM-DD")
		return
	}

	identity := middleware.CurrentIdentity(c)
	data, err := h.Reports.ExportXLSX(c.Request.Context(), identity, filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	filename := fmt.Sprintf("tickets_report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
