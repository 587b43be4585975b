package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/repomanager"
)

// ReportService derives summaries and period exports from the borrowing
// ledger. Pure read side: nothing here mutates state, and overdue status is
// always computed against the clock at call time.
type ReportService struct {
	rm  repomanager.RepositoryManager
	now func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(rm repomanager.RepositoryManager) *ReportService {
	return &ReportService{rm: rm, now: time.Now}
}

// Period is the inclusive [From, To] interval a report covers.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Metrics are the summary counts over a period.
type Metrics struct {
	Total    int `json:"total"`
	Returned int `json:"returned"`
	Active   int `json:"active"`
	Overdue  int `json:"overdue"`
}

// Summary is the report over borrowings started within a period.
type Summary struct {
	Period  Period  `json:"period"`
	Metrics Metrics `json:"metrics"`
}

func (s *ReportService) parsePeriod(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to are required", common.ErrValidation)
	}

	fromTime, err := parseInstant(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid date format", common.ErrValidation)
	}
	toTime, err := parseInstant(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid date format", common.ErrValidation)
	}

	return fromTime, toTime, nil
}

// BorrowingsSummary counts borrowings with borrowed_at in [from, to]:
// total, returned, active (total − returned), and overdue among the still
// unreturned, evaluated at summary time.
func (s *ReportService) BorrowingsSummary(ctx context.Context, from, to string) (*Summary, error) {
	fromTime, toTime, err := s.parsePeriod(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.rm.Reports().ListByBorrowedPeriod(ctx, fromTime, toTime)
	if err != nil {
		return nil, fmt.Errorf("error listing borrowings: %w", err)
	}

	now := s.now()
	metrics := Metrics{Total: len(rows)}
	for i := range rows {
		if !rows[i].Active() {
			metrics.Returned++
		}
		if rows[i].OverdueAt(now) {
			metrics.Overdue++
		}
	}
	metrics.Active = metrics.Total - metrics.Returned

	return &Summary{
		Period:  Period{From: fromTime, To: toTime},
		Metrics: metrics,
	}, nil
}

// BorrowingsExport returns the flattened rows for borrowings started in
// [from, to], borrowed_at descending.
func (s *ReportService) BorrowingsExport(ctx context.Context, from, to string) ([]models.BorrowingDetail, error) {
	fromTime, toTime, err := s.parsePeriod(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.rm.Reports().ListByBorrowedPeriod(ctx, fromTime, toTime)
	if err != nil {
		return nil, fmt.Errorf("error listing borrowings: %w", err)
	}

	return rows, nil
}

// lastMonthRange computes the previous calendar month as an inclusive
// interval: first instant of last month up to one millisecond before the
// first instant of the current month.
func (s *ReportService) lastMonthRange() (time.Time, time.Time) {
	now := s.now()
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := firstOfThisMonth.AddDate(0, -1, 0)
	to := firstOfThisMonth.Add(-time.Millisecond)
	return from, to
}

// OverdueLastMonthExport returns borrowings due last month that were overdue
// at some point: still unreturned, or returned after their due date. A copy
// returned late still counts even though it is no longer overdue now.
func (s *ReportService) OverdueLastMonthExport(ctx context.Context) ([]models.BorrowingDetail, error) {
	from, to := s.lastMonthRange()

	rows, err := s.rm.Reports().ListByDuePeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing borrowings: %w", err)
	}

	filtered := make([]models.BorrowingDetail, 0, len(rows))
	for i := range rows {
		if rows[i].Active() || rows[i].ReturnedLate() {
			filtered = append(filtered, rows[i])
		}
	}

	return filtered, nil
}

// AllLastMonthExport returns every borrowing started last month, regardless
// of return status.
func (s *ReportService) AllLastMonthExport(ctx context.Context) ([]models.BorrowingDetail, error) {
	from, to := s.lastMonthRange()

	rows, err := s.rm.Reports().ListByBorrowedPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing borrowings: %w", err)
	}

	return rows, nil
}
