package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter wires routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Get("/search", s.handleSearchBooks)
			r.Get("/{id}", s.handleGetBook)

			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/", s.handleCreateBook)
				r.Put("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
			})
		})

		r.Route("/borrowers", func(r chi.Router) {
			r.Get("/", s.handleListBorrowers)
			r.Get("/{id}", s.handleGetBorrower)

			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/", s.handleCreateBorrower)
				r.Put("/{id}", s.handleUpdateBorrower)
				r.Delete("/{id}", s.handleDeleteBorrower)
			})
		})

		r.Route("/borrowings", func(r chi.Router) {
			r.Post("/checkout", s.handleCheckout)
			r.Post("/return", s.handleReturn)
			r.Get("/borrowers/{id}/active", s.handleActiveForBorrower)
			r.Get("/overdue", s.handleOverdue)
		})

		r.Route("/reports/borrowings", func(r chi.Router) {
			r.Get("/summary", s.handleBorrowingsSummary)

			// Exports can be heavy; throttle them per client IP.
			r.Group(func(r chi.Router) {
				r.Use(s.rateLimitMiddleware)
				r.Get("/export", s.handleBorrowingsExport)
				r.Get("/overdue-last-month/export", s.handleOverdueLastMonthExport)
				r.Get("/last-month/export", s.handleAllLastMonthExport)
			})
		})
	})

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}
