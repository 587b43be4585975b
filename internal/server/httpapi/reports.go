package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// handleBorrowingsSummary returns counts over a borrowed-at period.
func (s *Server) handleBorrowingsSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	summary, err := s.reports.BorrowingsSummary(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Report generated successfully", summary)
}

// writeExport renders the rows in the requested format: json (default),
// csv, or xlsx.
func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, filename string, rows []models.BorrowingDetail) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeSuccess(w, http.StatusOK, "Report generated successfully", map[string]any{
			"borrowings": rows,
			"count":      len(rows),
		})
	case "csv":
		if err := writeCSVExport(w, filename, rows); err != nil {
			s.logger.Error(r.Context(), "error writing csv export", "error", err)
		}
	case "xlsx":
		if err := writeXLSXExport(w, filename, rows); err != nil {
			s.logger.Error(r.Context(), "error writing xlsx export", "error", err)
		}
	default:
		writeError(w, fmt.Errorf("%w: unsupported format %q", common.ErrValidation, format))
	}
}

// handleBorrowingsExport exports borrowings started within [from, to].
func (s *Server) handleBorrowingsExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rows, err := s.reports.BorrowingsExport(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	s.writeExport(w, r, "borrowings", rows)
}

// handleOverdueLastMonthExport exports borrowings due last month that were
// overdue at some point, including those since returned late.
func (s *Server) handleOverdueLastMonthExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.OverdueLastMonthExport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	s.writeExport(w, r, "overdue-borrowings-last-month", rows)
}

// handleAllLastMonthExport exports every borrowing started last month.
func (s *Server) handleAllLastMonthExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.AllLastMonthExport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	s.writeExport(w, r, "borrowings-last-month", rows)
}
