package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// detailColumns is the flattened row shape shared by all joined listings.
const detailColumns = `
	b.id, b.borrowed_at, b.due_date, b.returned_at,
	bk.id AS book_id, bk.title AS book_title, bk.author AS book_author, bk.isbn AS book_isbn,
	br.id AS borrower_id, br.name AS borrower_name, br.email AS borrower_email`

const detailJoins = `
	FROM borrowings b
	JOIN books bk ON bk.id = b.book_id
	JOIN borrowers br ON br.id = b.borrower_id`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActiveByBorrower(ctx context.Context, borrowerID int64) ([]models.BorrowedBook, error) {
	query := `
		SELECT b.id, b.book_id, b.borrowed_at, b.due_date, bk.title, bk.author, bk.isbn
		FROM borrowings b
		JOIN books bk ON bk.id = b.book_id
		WHERE b.borrower_id = $1 AND b.returned_at IS NULL
		ORDER BY b.borrowed_at DESC`

	items := []models.BorrowedBook{}
	if err := r.db.SelectContext(ctx, &items, query, borrowerID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowingDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE b.returned_at IS NULL AND b.due_date < $1
		ORDER BY b.due_date ASC`

	items := []models.BorrowingDetail{}
	if err := r.db.SelectContext(ctx, &items, query, now); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) ListByBorrowedPeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE b.borrowed_at BETWEEN $1 AND $2
		ORDER BY b.borrowed_at DESC`

	items := []models.BorrowingDetail{}
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) ListByDuePeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE b.due_date BETWEEN $1 AND $2
		ORDER BY b.due_date ASC`

	items := []models.BorrowingDetail{}
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}
