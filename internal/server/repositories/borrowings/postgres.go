package borrowings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

const borrowingColumns = `id, book_id, borrower_id, borrowed_at, due_date, returned_at, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanBorrowing(row *sql.Row) (*models.Borrowing, error) {
	b := &models.Borrowing{}
	var returnedAt sql.NullTime
	err := row.Scan(&b.ID, &b.BookID, &b.BorrowerID, &b.BorrowedAt, &b.DueDate, &returnedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if returnedAt.Valid {
		b.ReturnedAt = &returnedAt.Time
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, params CreateParams) (*models.Borrowing, error) {
	query :=
		`INSERT INTO borrowings (book_id, borrower_id, due_date, borrowed_at)
		 VALUES ($1, $2, $3, COALESCE($4, now()))
		 RETURNING ` + borrowingColumns

	var borrowedAt sql.NullTime
	if params.BorrowedAt != nil {
		borrowedAt = sql.NullTime{Time: *params.BorrowedAt, Valid: true}
	}

	created, err := scanBorrowing(r.db.QueryRowContext(ctx, query,
		params.BookID, params.BorrowerID, params.DueDate, borrowedAt))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) FindActiveByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	query := `SELECT ` + borrowingColumns + ` FROM borrowings WHERE id = $1 AND returned_at IS NULL`

	borrowing, err := scanBorrowing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return borrowing, nil
}

func (r *PostgresRepository) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) (*models.Borrowing, error) {
	query :=
		`UPDATE borrowings
		 SET returned_at = $2, updated_at = $2
		 WHERE id = $1 AND returned_at IS NULL
		 RETURNING ` + borrowingColumns

	borrowing, err := scanBorrowing(r.db.QueryRowContext(ctx, query, id, returnedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return borrowing, nil
}

func (r *PostgresRepository) HasActiveByBookID(ctx context.Context, bookID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM borrowings WHERE book_id = $1 AND returned_at IS NULL)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}
