package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBorrowingsSummary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	rows := []models.BorrowingDetail{
		// returned on time
		{ID: 1, DueDate: now.AddDate(0, 0, -5), ReturnedAt: timePtr(now.AddDate(0, 0, -10))},
		// returned late: counts as returned, not overdue
		{ID: 2, DueDate: now.AddDate(0, 0, -5), ReturnedAt: timePtr(now.AddDate(0, 0, -1))},
		// active, not yet due
		{ID: 3, DueDate: now.AddDate(0, 0, 5)},
		// active and past due
		{ID: 4, DueDate: now.AddDate(0, 0, -1)},
	}

	rm := &fakeRepoManager{
		reports: &fakeReportsRepo{
			listByBorrowedPeriod: func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
				return rows, nil
			},
		},
	}

	svc := NewReportService(rm)
	svc.now = func() time.Time { return now }

	summary, err := svc.BorrowingsSummary(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Equal(t, Metrics{Total: 4, Returned: 2, Active: 2, Overdue: 1}, summary.Metrics)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), summary.Period.From)
}

func TestBorrowingsSummaryValidation(t *testing.T) {
	svc := NewReportService(&fakeRepoManager{})

	tests := []struct {
		name     string
		from, to string
	}{
		{"missing from", "", "2026-08-31"},
		{"missing to", "2026-08-01", ""},
		{"malformed from", "yesterday", "2026-08-31"},
		{"malformed to", "2026-08-01", "31/08/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BorrowingsSummary(context.Background(), tt.from, tt.to)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestLastMonthRange(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		from time.Time
		to   time.Time
	}{
		{
			"mid month",
			time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 31, 23, 59, 59, 999000000, time.UTC),
		},
		{
			"january wraps to december",
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 23, 59, 59, 999000000, time.UTC),
		},
		{
			"first of month after short month",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 28, 23, 59, 59, 999000000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportService(&fakeRepoManager{})
			svc.now = func() time.Time { return tt.now }

			from, to := svc.lastMonthRange()
			require.Equal(t, tt.from, from)
			require.Equal(t, tt.to, to)
		})
	}
}

func TestOverdueLastMonthExport(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	due10 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	due17 := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)
	due20 := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	rows := []models.BorrowingDetail{
		// returned before the due date: never overdue, excluded
		{ID: 1, DueDate: due10, ReturnedAt: timePtr(time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC))},
		// returned after the due date: was overdue, included
		{ID: 2, DueDate: due17, ReturnedAt: timePtr(time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC))},
		// still unreturned: included
		{ID: 3, DueDate: due20},
	}

	var gotFrom, gotTo time.Time
	rm := &fakeRepoManager{
		reports: &fakeReportsRepo{
			listByDuePeriod: func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
				gotFrom, gotTo = from, to
				return rows, nil
			},
		},
	}

	svc := NewReportService(rm)
	svc.now = func() time.Time { return now }

	result, err := svc.OverdueLastMonthExport(context.Background())
	require.NoError(t, err)

	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	require.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999000000, time.UTC), gotTo)

	require.Len(t, result, 2)
	require.Equal(t, int64(2), result[0].ID)
	require.Equal(t, int64(3), result[1].ID)
}

func TestAllLastMonthExport(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	rows := []models.BorrowingDetail{
		{ID: 1, ReturnedAt: timePtr(now)},
		{ID: 2},
	}

	var gotFrom, gotTo time.Time
	rm := &fakeRepoManager{
		reports: &fakeReportsRepo{
			listByBorrowedPeriod: func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
				gotFrom, gotTo = from, to
				return rows, nil
			},
		},
	}

	svc := NewReportService(rm)
	svc.now = func() time.Time { return now }

	result, err := svc.AllLastMonthExport(context.Background())
	require.NoError(t, err)

	// Every row comes back regardless of return status.
	require.Equal(t, rows, result)
	require.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	require.Equal(t, time.Date(2026, 7, 31, 23, 59, 59, 999000000, time.UTC), gotTo)
}

func TestBorrowingsExport(t *testing.T) {
	rows := []models.BorrowingDetail{{ID: 1}, {ID: 2}}

	rm := &fakeRepoManager{
		reports: &fakeReportsRepo{
			listByBorrowedPeriod: func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
				return rows, nil
			},
		},
	}

	svc := NewReportService(rm)

	result, err := svc.BorrowingsExport(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Equal(t, rows, result)
}
