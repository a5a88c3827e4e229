package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail is returned when a create would violate the
// case-insensitive email uniqueness constraint.
var ErrDuplicateEmail = errors.New("email already registered")

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// GetByEmail expects an already-normalized address.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type PGCustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PGCustomerRepository{db: db}
}

func (r *PGCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE email=$1)`, customer.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEmail
	}
	return r.db.QueryRow(ctx, `INSERT INTO customers (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`, customer.ID, customer.Name, customer.Email, customer.Phone).
		Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

func (r *PGCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, name, email, phone, created_at, updated_at FROM customers WHERE id=$1`, id))
}

func (r *PGCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, name, email, phone, created_at, updated_at FROM customers WHERE email=$1`, email))
}

func (r *PGCustomerRepository) scanOne(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCustomerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone, created_at, updated_at FROM customers ORDER BY created_at LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update never touches the email column; the address is immutable after
// creation.
func (r *PGCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	row := r.db.QueryRow(ctx, `UPDATE customers SET name=$1, phone=$2, updated_at=now() WHERE id=$3 RETURNING email, updated_at`,
		customer.Name, customer.Phone, customer.ID)
	if err := row.Scan(&customer.Email, &customer.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGCustomerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
