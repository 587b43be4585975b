// Package repomanager wires the per-entity repositories to a database handle
// and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/books"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowers"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/users"
)

// RepositoryManager builds repositories bound to the given handle: the pool
// for standalone reads, or a transaction for multi-repository atomic units.
// Reports is read-only and always runs against the pool.
type RepositoryManager interface {
	Books(db dbx.DBTX) books.Repository
	Borrowers(db dbx.DBTX) borrowers.Repository
	Borrowings(db dbx.DBTX) borrowings.Repository
	Users(db dbx.DBTX) users.Repository
	Reports() reports.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
