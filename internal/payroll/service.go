// Package payroll computes monthly pay from attendance and wage configs.
// Net pay is presence days times the daily wage, plus the monthly bonus,
// minus any cash advances taken during the month.
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

const monthLayout = "2006-01"

// SetWageInput configures one employee's wage.
type SetWageInput struct {
	EmployeeID int64            `json:"employee_id" validate:"required"`
	DailyWage  ledger.RawAmount `json:"daily_wage" validate:"required"`
	Bonus      ledger.RawAmount `json:"bonus"`
}

// Line is one employee's pay for a month.
type Line struct {
	EmployeeID  int64  `json:"employee_id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	DaysPresent int64  `json:"days_present"`
	DailyWage   int64  `json:"daily_wage"`
	BasePay     int64  `json:"base_pay"`
	Bonus       int64  `json:"bonus"`
	KasbonTotal int64  `json:"kasbon_total"`
	NetPay      int64  `json:"net_pay"`
}

// MonthlyReport is the pay run for one calendar month.
type MonthlyReport struct {
	Month string `json:"month"`
	Lines []Line `json:"lines"`
	Total int64  `json:"total"`
}

type Service struct {
	repo Repository
	cal  *ledger.Calendar
}

func NewService(repo Repository, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// SetWage creates or replaces an employee's wage config.
func (s *Service) SetWage(ctx context.Context, actor shared.Identity, in SetWageInput) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	wage, err := ledger.ParseAmount(in.DailyWage)
	if err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	bonus, err := ledger.ParseOptionalAmount(in.Bonus)
	if err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	return s.repo.UpsertConfig(ctx, in.EmployeeID, wage, bonus)
}

// Config returns one employee's wage config.
func (s *Service) Config(ctx context.Context, actor shared.Identity, employeeID int64) (Config, error) {
	if !actor.IsSuperAdmin() {
		return Config{}, httpx.ErrForbidden
	}
	return s.repo.GetConfig(ctx, employeeID)
}

// Configs lists the wage configs of active employees.
func (s *Service) Configs(ctx context.Context, actor shared.Identity) ([]Config, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListConfigs(ctx)
}

// Monthly builds the pay run for a month given as "YYYY-MM". An empty month
// means the current business month.
func (s *Service) Monthly(ctx context.Context, actor shared.Identity, month string) (MonthlyReport, error) {
	if !actor.IsSuperAdmin() {
		return MonthlyReport{}, httpx.ErrForbidden
	}
	if month == "" {
		month = s.cal.Now().Format(monthLayout)
	}
	from, to, err := monthWindow(month)
	if err != nil {
		return MonthlyReport{}, err
	}

	configs, err := s.repo.ListConfigs(ctx)
	if err != nil {
		return MonthlyReport{}, err
	}
	presence, err := s.repo.PresenceCounts(ctx, from, to)
	if err != nil {
		return MonthlyReport{}, err
	}
	kasbon, err := s.repo.KasbonSums(ctx, from, to)
	if err != nil {
		return MonthlyReport{}, err
	}

	rep := MonthlyReport{Month: month}
	for _, c := range configs {
		days := presence[c.EmployeeID]
		line := Line{
			EmployeeID:  c.EmployeeID,
			Name:        c.Name,
			Position:    c.Position,
			DaysPresent: days,
			DailyWage:   c.DailyWage,
			BasePay:     days * c.DailyWage,
			Bonus:       c.Bonus,
			KasbonTotal: kasbon[c.EmployeeID],
		}
		line.NetPay = line.BasePay + line.Bonus - line.KasbonTotal
		rep.Lines = append(rep.Lines, line)
		rep.Total += line.NetPay
	}
	return rep, nil
}

// monthWindow converts "YYYY-MM" into a half-open [first, firstOfNext) date range.
func monthWindow(month string) (string, string, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("%w: month must be formatted YYYY-MM", httpx.ErrInvalidInput)
	}
	return start.Format(ledger.DateLayout), start.AddDate(0, 1, 0).Format(ledger.DateLayout), nil
}
