package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RocketRepository interface {
	Create(ctx context.Context, rocket *domain.Rocket) error
	GetByID(ctx context.Context, id string) (*domain.Rocket, error)
	List(ctx context.Context, limit, offset int) ([]domain.Rocket, error)
	Update(ctx context.Context, rocket *domain.Rocket) error
	Delete(ctx context.Context, id string) error
}

type PGRocketRepository struct {
	db *pgxpool.Pool
}

func NewRocketRepository(db *pgxpool.Pool) RocketRepository {
	return &PGRocketRepository{db: db}
}

func (r *PGRocketRepository) Create(ctx context.Context, rocket *domain.Rocket) error {
	return r.db.QueryRow(ctx, `INSERT INTO rockets (id, name, capacity, range_category)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`, rocket.ID, rocket.Name, rocket.Capacity, rocket.Range).
		Scan(&rocket.CreatedAt, &rocket.UpdatedAt)
}

func (r *PGRocketRepository) GetByID(ctx context.Context, id string) (*domain.Rocket, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, capacity, range_category, created_at, updated_at FROM rockets WHERE id=$1`, id)
	var rk domain.Rocket
	if err := row.Scan(&rk.ID, &rk.Name, &rk.Capacity, &rk.Range, &rk.CreatedAt, &rk.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rk, nil
}

func (r *PGRocketRepository) List(ctx context.Context, limit, offset int) ([]domain.Rocket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, capacity, range_category, created_at, updated_at FROM rockets ORDER BY created_at LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rockets := make([]domain.Rocket, 0)
	for rows.Next() {
		var rk domain.Rocket
		if err := rows.Scan(&rk.ID, &rk.Name, &rk.Capacity, &rk.Range, &rk.CreatedAt, &rk.UpdatedAt); err != nil {
			return nil, err
		}
		rockets = append(rockets, rk)
	}
	return rockets, rows.Err()
}

func (r *PGRocketRepository) Update(ctx context.Context, rocket *domain.Rocket) error {
	row := r.db.QueryRow(ctx, `UPDATE rockets SET name=$1, capacity=$2, range_category=$3, updated_at=now() WHERE id=$4 RETURNING updated_at`,
		rocket.Name, rocket.Capacity, rocket.Range, rocket.ID)
	if err := row.Scan(&rocket.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGRocketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM rockets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ RocketRepository = (*PGRocketRepository)(nil)
