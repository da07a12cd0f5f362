package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/permissions"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// ReportService produces the admin report views: aggregate totals over
// a filtered ticket set and the XLSX export of the same set.
type ReportService struct {
	tickets repository.TicketRepository
}

// NewReportService creates a report service reading from the given
// ticket repository.
func NewReportService(tickets repository.TicketRepository) *ReportService {
	return &ReportService{tickets: tickets}
}

// ReportSummary aggregates a ticket set.
type ReportSummary struct {
	Total      int                `json:"total"`
	ByStatus   map[string]int     `json:"byStatus"`
	ByPaid     map[string]int     `json:"byPaid"`
	RateTotals map[string]float64 `json:"rateTotals"` // keyed by currency
}

// Summary computes totals over the tickets matching the filter.
func (s *ReportService) Summary(ctx context.Context, id models.Identity, filter repository.TicketFilter) (*ReportSummary, error) {
	if !permissions.CanViewReports(id) {
		return nil, ErrForbidden
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		Total:      len(tickets),
		ByStatus:   make(map[string]int),
		ByPaid:     make(map[string]int),
		RateTotals: make(map[string]float64),
	}
	for i := range tickets {
		t := &tickets[i]
		summary.ByStatus[t.Status]++
		summary.ByPaid[t.Paid]++
		if t.Rate != nil {
			summary.RateTotals[t.Currency] += *t.Rate
		}
	}
	return summary, nil
}

var exportHeader = []string{
	"Title", "Description", "Assigned To", "Created By", "Company",
	"Priority", "Due Date", "Done At", "Status", "Paid", "Rate", "Currency",
}

// ExportXLSX renders the tickets matching the filter as a spreadsheet,
// one row per ticket, and returns the encoded file.
func (s *ReportService) ExportXLSX(ctx context.Context, id models.Identity, filter repository.TicketFilter) ([]byte, error) {
	if !permissions.CanViewReports(id) {
		return nil, ErrForbidden
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tickets"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row := range tickets {
		t := &tickets[row]
		values := []any{
			t.Title, t.Description, t.AssignedTo, t.CreatedBy, t.Company,
			t.Priority, formatDate(t.DueDate), formatDate(t.DoneAt),
			t.Status, t.Paid, formatRate(t.Rate), t.Currency,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatRate(r *float64) any {
	if r == nil {
		return ""
	}
	return *r
}
