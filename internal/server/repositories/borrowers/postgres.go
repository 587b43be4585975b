package borrowers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

const borrowerColumns = `id, name, email, registered_at, created_at, updated_at`

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanBorrower(row *sql.Row) (*models.Borrower, error) {
	b := &models.Borrower{}
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.RegisteredAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, borrower *models.Borrower) (*models.Borrower, error) {
	query :=
		`INSERT INTO borrowers (name, email)
		 VALUES ($1, $2)
		 RETURNING ` + borrowerColumns

	created, err := scanBorrower(r.db.QueryRowContext(ctx, query, borrower.Name, borrower.Email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: email already exists", common.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE id = $1`

	borrower, err := scanBorrower(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return borrower, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE email = $1`

	borrower, err := scanBorrower(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return borrower, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]models.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var borrowers []models.Borrower
	for rows.Next() {
		var b models.Borrower
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.RegisteredAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		borrowers = append(borrowers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return borrowers, nil
}

func (r *PostgresRepository) Update(ctx context.Context, borrower *models.Borrower) (*models.Borrower, error) {
	query :=
		`UPDATE borrowers
		 SET name = $2, email = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + borrowerColumns

	updated, err := scanBorrower(r.db.QueryRowContext(ctx, query, borrower.ID, borrower.Name, borrower.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: email already exists", common.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM borrowers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
