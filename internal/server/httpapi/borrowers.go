package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/lendkeeper/internal/server/services"
)

type createBorrowerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateBorrowerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// handleCreateBorrower registers a library member.
func (s *Server) handleCreateBorrower(w http.ResponseWriter, r *http.Request) {
	var req createBorrowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	borrower, err := s.borrowers.CreateBorrower(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Borrower created successfully", borrower)
}

// handleListBorrowers returns a page of the directory.
func (s *Server) handleListBorrowers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	items, err := s.borrowers.ListBorrowers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Borrowers retrieved successfully", map[string]any{
		"borrowers": items,
		"count":     len(items),
	})
}

// handleGetBorrower returns a single borrower.
func (s *Server) handleGetBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	borrower, err := s.borrowers.GetBorrower(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Borrower retrieved successfully", borrower)
}

// handleUpdateBorrower applies a partial update.
func (s *Server) handleUpdateBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateBorrowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	borrower, err := s.borrowers.UpdateBorrower(r.Context(), id, services.UpdateBorrowerParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Borrower updated successfully", borrower)
}

// handleDeleteBorrower removes a borrower.
func (s *Server) handleDeleteBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.borrowers.DeleteBorrower(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Borrower deleted successfully", nil)
}
