package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/lendkeeper/internal/server/services"
)

type checkoutRequest struct {
	BookID     int64  `json:"book_id"`
	BorrowerID int64  `json:"borrower_id"`
	DueDate    string `json:"due_date"`
	BorrowedAt string `json:"borrowed_at,omitempty"`
}

type returnRequest struct {
	BorrowingID int64 `json:"borrowing_id"`
}

// handleCheckout lends a copy of a book to a borrower.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.borrowings.Checkout(r.Context(), services.CheckoutParams{
		BookID:     req.BookID,
		BorrowerID: req.BorrowerID,
		DueDate:    req.DueDate,
		BorrowedAt: req.BorrowedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Book checked out successfully", result)
}

// handleReturn closes an active borrowing.
func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.borrowings.Return(r.Context(), req.BorrowingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Book returned successfully", result)
}

// handleActiveForBorrower lists a borrower's open borrowings.
func (s *Server) handleActiveForBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.borrowings.ListActiveForBorrower(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Active borrowings retrieved successfully", result)
}

// handleOverdue lists every open borrowing past its due date.
func (s *Server) handleOverdue(w http.ResponseWriter, r *http.Request) {
	items, err := s.borrowings.ListOverdue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Overdue borrowings retrieved successfully", map[string]any{
		"borrowings": items,
		"count":      len(items),
	})
}
