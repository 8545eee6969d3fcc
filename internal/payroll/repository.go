package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Config holds one employee's wage settings.
type Config struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	DailyWage  int64  `json:"daily_wage"`
	Bonus      int64  `json:"bonus"`
}

// Repository stores wage configs and reads the monthly inputs of the payroll
// calculation from the attendance and expense tables.
type Repository interface {
	UpsertConfig(ctx context.Context, employeeID, dailyWage, bonus int64) error
	GetConfig(ctx context.Context, employeeID int64) (Config, error)
	ListConfigs(ctx context.Context) ([]Config, error)
	PresenceCounts(ctx context.Context, from, to string) (map[int64]int64, error)
	KasbonSums(ctx context.Context, from, to string) (map[int64]int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) UpsertConfig(ctx context.Context, employeeID, dailyWage, bonus int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payroll_configs (employee_id, daily_wage, bonus)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (employee_id) DO UPDATE SET daily_wage = EXCLUDED.daily_wage, bonus = EXCLUDED.bonus`,
		employeeID, dailyWage, bonus)
	return err
}

func (r *repository) GetConfig(ctx context.Context, employeeID int64) (Config, error) {
	var c Config
	err := r.pool.QueryRow(ctx,
		`SELECT p.employee_id, e.name, e.position, p.daily_wage, p.bonus
		 FROM payroll_configs p
		 JOIN employees e ON e.id = p.employee_id
		 WHERE p.employee_id = $1`, employeeID).
		Scan(&c.EmployeeID, &c.Name, &c.Position, &c.DailyWage, &c.Bonus)
	if errors.Is(err, pgx.ErrNoRows) {
		return Config{}, httpx.ErrNotFound
	}
	return c, err
}

func (r *repository) ListConfigs(ctx context.Context) ([]Config, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.employee_id, e.name, e.position, p.daily_wage, p.bonus
		 FROM payroll_configs p
		 JOIN employees e ON e.id = p.employee_id
		 WHERE e.status = 'active'
		 ORDER BY e.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Config
	for rows.Next() {
		var c Config
		if err := rows.Scan(&c.EmployeeID, &c.Name, &c.Position, &c.DailyWage, &c.Bonus); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PresenceCounts counts days marked present per employee inside [from, to).
func (r *repository) PresenceCounts(ctx context.Context, from, to string) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT employee_id, COUNT(*)
		 FROM attendance
		 WHERE status = 'present' AND att_date >= $1 AND att_date < $2
		 GROUP BY employee_id`, from, to)
	if err != nil {
		return nil, err
	}
	return scanCounts(rows)
}

// KasbonSums totals the active cash advances per employee inside [from, to).
func (r *repository) KasbonSums(ctx context.Context, from, to string) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT employee_id, COALESCE(SUM(amount), 0)
		 FROM expenses
		 WHERE category = 'Kasbon' AND status = 'active' AND employee_id IS NOT NULL
		   AND entry_date >= $1 AND entry_date < $2
		 GROUP BY employee_id`, from, to)
	if err != nil {
		return nil, err
	}
	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) (map[int64]int64, error) {
	defer rows.Close()
	out := map[int64]int64{}
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}
