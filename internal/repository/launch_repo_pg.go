package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LaunchRepository interface {
	Create(ctx context.Context, launch *domain.Launch) error
	GetByID(ctx context.Context, id string) (*domain.Launch, error)
	List(ctx context.Context, limit, offset int) ([]domain.Launch, error)
	ListByRocket(ctx context.Context, rocketID string) ([]domain.Launch, error)
	Update(ctx context.Context, launch *domain.Launch) error
	Delete(ctx context.Context, id string) error
}

type PGLaunchRepository struct {
	db *pgxpool.Pool
}

func NewLaunchRepository(db *pgxpool.Pool) LaunchRepository {
	return &PGLaunchRepository{db: db}
}

const launchColumns = `id, rocket_id, launch_date, price_per_seat_cents, min_passengers, status, created_at, updated_at`

func scanLaunch(row pgx.Row) (*domain.Launch, error) {
	var l domain.Launch
	if err := row.Scan(&l.ID, &l.RocketID, &l.Date, &l.PricePerSeatCents, &l.MinPassengers, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PGLaunchRepository) Create(ctx context.Context, launch *domain.Launch) error {
	return r.db.QueryRow(ctx, `INSERT INTO launches (id, rocket_id, launch_date, price_per_seat_cents, min_passengers, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		launch.ID, launch.RocketID, launch.Date, launch.PricePerSeatCents, launch.MinPassengers, launch.Status).
		Scan(&launch.CreatedAt, &launch.UpdatedAt)
}

func (r *PGLaunchRepository) GetByID(ctx context.Context, id string) (*domain.Launch, error) {
	l, err := scanLaunch(r.db.QueryRow(ctx, `SELECT `+launchColumns+` FROM launches WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// List treats limit 0 as "no limit", the same contract as the memory
// implementation. NULLIF maps it to LIMIT NULL.
func (r *PGLaunchRepository) List(ctx context.Context, limit, offset int) ([]domain.Launch, error) {
	rows, err := r.db.Query(ctx, `SELECT `+launchColumns+` FROM launches ORDER BY launch_date LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLaunches(rows)
}

func (r *PGLaunchRepository) ListByRocket(ctx context.Context, rocketID string) ([]domain.Launch, error) {
	rows, err := r.db.Query(ctx, `SELECT `+launchColumns+` FROM launches WHERE rocket_id=$1 ORDER BY launch_date`, rocketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLaunches(rows)
}

func collectLaunches(rows pgx.Rows) ([]domain.Launch, error) {
	launches := make([]domain.Launch, 0)
	for rows.Next() {
		l, err := scanLaunch(rows)
		if err != nil {
			return nil, err
		}
		launches = append(launches, *l)
	}
	return launches, rows.Err()
}

func (r *PGLaunchRepository) Update(ctx context.Context, launch *domain.Launch) error {
	row := r.db.QueryRow(ctx, `UPDATE launches SET launch_date=$1, price_per_seat_cents=$2, min_passengers=$3, status=$4, updated_at=now() WHERE id=$5 RETURNING updated_at`,
		launch.Date, launch.PricePerSeatCents, launch.MinPassengers, launch.Status, launch.ID)
	if err := row.Scan(&launch.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGLaunchRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM launches WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ LaunchRepository = (*PGLaunchRepository)(nil)
