package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Repository stores the roster.
type Repository interface {
	List(ctx context.Context, status string) ([]Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, e Employee) (int64, error)
	Update(ctx context.Context, e Employee) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, status string) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone, position, status FROM employees WHERE status = $1 ORDER BY name`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Position, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, phone, position, status FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Phone, &e.Position, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, e Employee) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employees (name, phone, position, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Name, e.Phone, e.Position, e.Status).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, e Employee) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE employees SET name = $1, phone = $2, position = $3 WHERE id = $4`,
		e.Name, e.Phone, e.Position, e.ID)
	return err
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE employees SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}
