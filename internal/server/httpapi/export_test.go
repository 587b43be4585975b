package httpapi

import (
	"encoding/csv"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

func TestWriteCSVExport(t *testing.T) {
	returnedAt := time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)
	rows := []models.BorrowingDetail{
		{
			ID:            1,
			BorrowedAt:    time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
			DueDate:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			ReturnedAt:    &returnedAt,
			BookID:        3,
			BookTitle:     "Dune",
			BookAuthor:    "Frank Herbert",
			BookISBN:      "9780441172719",
			BorrowerID:    7,
			BorrowerName:  "Ada Lovelace",
			BorrowerEmail: "ada@example.com",
		},
		{
			ID:         2,
			BorrowedAt: time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC),
			DueDate:    time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, writeCSVExport(rec, "borrowings", rows))

	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "borrowings.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, exportHeader, records[0])
	require.Equal(t, "1", records[1][0])
	require.Equal(t, "2026-07-20T12:00:00Z", records[1][3])
	require.Equal(t, "Dune", records[1][5])

	// Unreturned borrowings export an empty returned_at.
	require.Equal(t, "", records[2][3])
}

func TestWriteXLSXExport(t *testing.T) {
	rows := []models.BorrowingDetail{
		{
			ID:         1,
			BorrowedAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
			DueDate:    time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			BookTitle:  "Dune",
		},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, writeXLSXExport(rec, "borrowings", rows))

	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "borrowings.xlsx")
	require.NotZero(t, rec.Body.Len())
}
