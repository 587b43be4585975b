package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

const bookColumns = `id, title, author, isbn, available_quantity, shelf_location, created_at, updated_at`

// pgUniqueViolation is the Postgres error code for unique constraint breaks.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanBook(row *sql.Row) (*models.Book, error) {
	b := &models.Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.AvailableQuantity, &b.ShelfLocation, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (title, author, isbn, available_quantity, shelf_location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + bookColumns

	created, err := scanBook(r.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.AvailableQuantity, book.ShelfLocation))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: isbn already exists", common.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	book, err := scanBook(r.db.QueryRowContext(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *PostgresRepository) Search(ctx context.Context, params SearchParams) ([]models.Book, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.ISBN != "" {
		conditions = append(conditions, "isbn = "+arg(params.ISBN))
	}
	if params.Title != "" {
		conditions = append(conditions, "title ILIKE "+arg("%"+params.Title+"%"))
	}
	if params.Author != "" {
		conditions = append(conditions, "author ILIKE "+arg("%"+params.Author+"%"))
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id DESC LIMIT ` + arg(params.Limit) + ` OFFSET ` + arg(params.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`UPDATE books
		 SET title = $2, author = $3, isbn = $4, available_quantity = $5, shelf_location = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + bookColumns

	updated, err := scanBook(r.db.QueryRowContext(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.AvailableQuantity, book.ShelfLocation))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: isbn already exists", common.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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

func (r *PostgresRepository) DecrementAvailable(ctx context.Context, id int64) (*models.Book, error) {
	// The predicate and the write are one statement; concurrent checkouts
	// serialize on the row and the count can never go below zero.
	query :=
		`UPDATE books
		 SET available_quantity = available_quantity - 1, updated_at = now()
		 WHERE id = $1 AND available_quantity > 0
		 RETURNING ` + bookColumns

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) IncrementAvailable(ctx context.Context, id int64) (*models.Book, error) {
	query :=
		`UPDATE books
		 SET available_quantity = available_quantity + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + bookColumns

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func collectBooks(rows *sql.Rows) ([]models.Book, error) {
	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.AvailableQuantity, &b.ShelfLocation, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return books, nil
}
