// Package httpapi exposes the lending service over a REST API: catalogue and
// borrower CRUD, the borrowing lifecycle, and report exports. Routing is
// chi, responses use a uniform JSON envelope, and error kinds from the
// service layer map onto HTTP status codes at this boundary only.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/logging"
	"github.com/dmitrijs2005/lendkeeper/internal/server/config"
	"github.com/dmitrijs2005/lendkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of the lending service.
type Server struct {
	address       string
	logger        logging.Logger
	books         *services.BookService
	borrowers     *services.BorrowerService
	borrowings    *services.BorrowingService
	reports       *services.ReportService
	users         *services.UserService
	exportLimiter *ipRateLimiter
}

// NewServer wires the services into an HTTP server listening on the
// configured address.
func NewServer(cfg *config.Config, l logging.Logger,
	books *services.BookService,
	borrowers *services.BorrowerService,
	borrowings *services.BorrowingService,
	reports *services.ReportService,
	users *services.UserService,
) *Server {
	return &Server{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		books:         books,
		borrowers:     borrowers,
		borrowings:    borrowings,
		reports:       reports,
		users:         users,
		exportLimiter: newIPRateLimiter(cfg.ExportRateLimit, cfg.ExportRateBurst),
	}
}

// Run starts accepting connections and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
