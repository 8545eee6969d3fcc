package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// DailyReport is the cash position for one business day plus the running
// balances across all time.
type DailyReport struct {
	Date              string `json:"date"`
	CashToday         int64  `json:"cash_today"`
	TransferToday     int64  `json:"transfer_today"`
	SettlementToday   int64  `json:"settlement_today"`
	CashBalance       int64  `json:"cash_balance"`
	TransferBalance   int64  `json:"transfer_balance"`
	SettlementBalance int64  `json:"settlement_balance"`
}

// DayBreakdown is one date's ledger movement per transaction type.
type DayBreakdown struct {
	Date       string `json:"date"`
	Cash       int64  `json:"cash"`
	Transfer   int64  `json:"transfer"`
	Settlement int64  `json:"settlement"`
}

// HistoryReport is the full per-date breakdown with the running balances.
type HistoryReport struct {
	Days              []DayBreakdown `json:"days"`
	CashBalance       int64          `json:"cash_balance"`
	TransferBalance   int64          `json:"transfer_balance"`
	SettlementBalance int64          `json:"settlement_balance"`
}

type Service struct {
	repo  Repository
	cache *Cache
	cal   *ledger.Calendar
}

func NewService(repo Repository, cache *Cache, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cache: cache, cal: cal}
}

// Daily builds the report for the requested date. Admins are pinned to today
// regardless of the date they ask for; super admins may look back.
func (s *Service) Daily(ctx context.Context, actor shared.Identity, date string) (DailyReport, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return DailyReport{}, httpx.ErrForbidden
	}
	if date == "" || !actor.IsSuperAdmin() {
		date = s.cal.Today()
	} else if _, err := ledger.ParseDate(date); err != nil {
		return DailyReport{}, fmt.Errorf("%w: date must be formatted YYYY-MM-DD", httpx.ErrInvalidInput)
	}

	key, err := s.cache.BuildKey(ctx, "report", "daily", date)
	if err != nil {
		return DailyReport{}, err
	}

	var rep DailyReport
	err = s.cache.FetchJSON(ctx, key, &rep, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, date)
	})
	return rep, err
}

func (s *Service) build(ctx context.Context, date string) (DailyReport, error) {
	var daily, totals map[ledger.TransactionType]int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.repo.SumsOn(ctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DailyReport{}, err
	}

	return DailyReport{
		Date:              date,
		CashToday:         daily[ledger.TypeCash],
		TransferToday:     daily[ledger.TypeTransfer],
		SettlementToday:   daily[ledger.TypeSettlement],
		CashBalance:       totals[ledger.TypeCash],
		TransferBalance:   totals[ledger.TypeTransfer],
		SettlementBalance: totals[ledger.TypeSettlement],
	}, nil
}

// History returns every booked date's movements, newest first, for super
// admins reviewing the books beyond a single day.
func (s *Service) History(ctx context.Context, actor shared.Identity) (HistoryReport, error) {
	if !actor.IsSuperAdmin() {
		return HistoryReport{}, httpx.ErrForbidden
	}

	key, err := s.cache.BuildKey(ctx, "report", "history")
	if err != nil {
		return HistoryReport{}, err
	}

	var rep HistoryReport
	err = s.cache.FetchJSON(ctx, key, &rep, func(ctx context.Context) (interface{}, error) {
		return s.buildHistory(ctx)
	})
	return rep, err
}

func (s *Service) buildHistory(ctx context.Context) (HistoryReport, error) {
	var sums []DateSum
	var totals map[ledger.TransactionType]int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sums, err = s.repo.SumsByDate(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return HistoryReport{}, err
	}

	rep := HistoryReport{
		CashBalance:       totals[ledger.TypeCash],
		TransferBalance:   totals[ledger.TypeTransfer],
		SettlementBalance: totals[ledger.TypeSettlement],
	}
	// Rows arrive ordered by date descending, so same-date types are adjacent.
	for _, row := range sums {
		if len(rep.Days) == 0 || rep.Days[len(rep.Days)-1].Date != row.Date {
			rep.Days = append(rep.Days, DayBreakdown{Date: row.Date})
		}
		day := &rep.Days[len(rep.Days)-1]
		switch row.Type {
		case ledger.TypeCash:
			day.Cash = row.Sum
		case ledger.TypeTransfer:
			day.Transfer = row.Sum
		case ledger.TypeSettlement:
			day.Settlement = row.Sum
		}
	}
	return rep, nil
}

// Invalidate drops every cached report. Called after any ledger mutation.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
