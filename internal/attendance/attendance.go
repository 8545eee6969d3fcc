// Package attendance records who showed up each business day. One row per
// employee per day; marking again replaces the earlier status.
package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusSick    = "sick"
	StatusLeave   = "leave"
	StatusAbsent  = "absent"
)

// ParseStatus maps user input onto a known status.
func ParseStatus(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present", "hadir":
		return StatusPresent, true
	case "sick", "sakit":
		return StatusSick, true
	case "leave", "izin":
		return StatusLeave, true
	case "absent", "alpha":
		return StatusAbsent, true
	default:
		return "", false
	}
}

// Record is one attendance row joined with the employee it belongs to.
type Record struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Note       string `json:"note"`
}

// Repository stores attendance rows.
type Repository interface {
	Upsert(ctx context.Context, employeeID int64, date, status, note string) error
	ListOn(ctx context.Context, date string) ([]Record, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Upsert(ctx context.Context, employeeID int64, date, status, note string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendance (employee_id, att_date, status, note)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (employee_id, att_date) DO UPDATE SET status = EXCLUDED.status, note = EXCLUDED.note`,
		employeeID, date, status, note)
	return err
}

func (r *repository) ListOn(ctx context.Context, date string) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.employee_id, e.name, e.position, to_char(a.att_date, 'YYYY-MM-DD'), a.status, a.note
		 FROM attendance a
		 JOIN employees e ON e.id = a.employee_id
		 WHERE a.att_date = $1
		 ORDER BY e.name`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.EmployeeID, &rec.Name, &rec.Position, &rec.Date, &rec.Status, &rec.Note); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkInput carries one attendance mark. Date is honored only for super
// admins; everyone else marks today.
type MarkInput struct {
	EmployeeID int64  `json:"employee_id" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Note       string `json:"note"`
	Date       string `json:"date"`
}

type Service struct {
	repo Repository
	cal  *ledger.Calendar
}

func NewService(repo Repository, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// Mark records today's status for an employee, replacing any earlier mark.
func (s *Service) Mark(ctx context.Context, actor shared.Identity, in MarkInput) error {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return httpx.ErrForbidden
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return fmt.Errorf("%w: status must be present, sick, leave or absent", httpx.ErrInvalidInput)
	}
	date := s.cal.Today()
	if in.Date != "" && actor.IsSuperAdmin() {
		if _, err := ledger.ParseDate(in.Date); err != nil {
			return fmt.Errorf("%w: date must be formatted YYYY-MM-DD", httpx.ErrInvalidInput)
		}
		date = in.Date
	}
	return s.repo.Upsert(ctx, in.EmployeeID, date, status, strings.TrimSpace(in.Note))
}

// ListOn returns attendance for a date. Admins are pinned to today.
func (s *Service) ListOn(ctx context.Context, actor shared.Identity, date string) ([]Record, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return nil, httpx.ErrForbidden
	}
	if date == "" || !actor.IsSuperAdmin() {
		date = s.cal.Today()
	} else if _, err := ledger.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: date must be formatted YYYY-MM-DD", httpx.ErrInvalidInput)
	}
	return s.repo.ListOn(ctx, date)
}
