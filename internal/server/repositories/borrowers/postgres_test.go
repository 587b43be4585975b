package borrowers

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

var borrowerCols = []string{"id", "name", "email", "registered_at", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func borrowerRow(id int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(borrowerCols).
		AddRow(id, "Alice", "alice@example.com", now, now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+borrowers\s*\(name,\s*email\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+`

	mock.ExpectQuery(q).
		WithArgs("Alice", "alice@example.com").
		WillReturnRows(borrowerRow(1))

	got, err := repo.Create(context.Background(), &models.Borrower{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 || got.Email != "alice@example.com" {
		t.Fatalf("unexpected borrower: %+v", got)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM borrowers WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+borrowers\s+SET\s+name\s*=\s*\$2`).
		WithArgs(int64(5), "Alice", "alice@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Borrower{ID: 5, Name: "Alice", Email: "alice@example.com"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM borrowers WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
