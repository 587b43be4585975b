package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/books"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowers"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	reports reports.Repository
}

// NewPostgresRepositoryManager builds a manager whose read-side reporting
// repository is bound to the given pool via sqlx.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		reports: reports.NewPostgresRepository(sqlx.NewDb(db, "pgx")),
	}
}

func (m *PostgresRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return books.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Borrowers(db dbx.DBTX) borrowers.Repository {
	return borrowers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Borrowings(db dbx.DBTX) borrowings.Repository {
	return borrowings.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reports() reports.Repository {
	return m.reports
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
