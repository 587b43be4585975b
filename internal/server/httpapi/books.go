package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/books"
	"github.com/dmitrijs2005/lendkeeper/internal/server/services"
)

type createBookRequest struct {
	Title             string `json:"title"`
	Author            string `json:"author"`
	ISBN              string `json:"isbn"`
	ShelfLocation     string `json:"shelf_location"`
	AvailableQuantity *int   `json:"available_quantity"`
}

type updateBookRequest struct {
	Title             *string `json:"title"`
	Author            *string `json:"author"`
	ISBN              *string `json:"isbn"`
	ShelfLocation     *string `json:"shelf_location"`
	AvailableQuantity *int    `json:"available_quantity"`
}

// handleCreateBook adds a book to the catalogue.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	book, err := s.books.CreateBook(r.Context(), services.CreateBookParams{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		ShelfLocation:     req.ShelfLocation,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Book created successfully", book)
}

// handleListBooks returns a page of the catalogue.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	items, err := s.books.ListBooks(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Books retrieved successfully", map[string]any{
		"books": items,
		"count": len(items),
	})
}

// handleSearchBooks filters by title/author substring or exact ISBN.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	q := r.URL.Query()

	items, err := s.books.SearchBooks(r.Context(), books.SearchParams{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		ISBN:   q.Get("isbn"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Books retrieved successfully", map[string]any{
		"books": items,
		"count": len(items),
	})
}

// handleGetBook returns a single book.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := s.books.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Book retrieved successfully", book)
}

// handleUpdateBook applies a partial update.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	book, err := s.books.UpdateBook(r.Context(), id, services.UpdateBookParams{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		ShelfLocation:     req.ShelfLocation,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Book updated successfully", book)
}

// handleDeleteBook removes a book without open borrowings.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.books.DeleteBook(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Book deleted successfully", nil)
}
