package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCapacityExceeded is returned by Save when the insert would push the
// launch's non-cancelled seat total over the rocket capacity.
var ErrCapacityExceeded = errors.New("insufficient seats available")

type BookingRepository interface {
	Save(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListByLaunch excludes cancelled bookings.
	ListByLaunch(ctx context.Context, launchID string) ([]domain.Booking, error)
	// ListByCustomer returns bookings in every status.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus domain.PaymentStatus) (*domain.Booking, error)
	DeleteByID(ctx context.Context, id string) error
	// TotalBookedSeats sums seats over non-cancelled bookings for a launch.
	// It is the only capacity-accounting channel.
	TotalBookedSeats(ctx context.Context, launchID string) (int, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, launch_id, customer_id, seats, total_price_cents, status, payment_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.LaunchID, &b.CustomerID, &b.Seats, &b.TotalPriceCents, &b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save re-checks the capacity invariant inside the INSERT itself, so the
// check and the write cannot interleave with another admission even when
// several service instances share the database.
func (r *PGBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (id, launch_id, customer_id, seats, total_price_cents, status, payment_status)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE (SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE launch_id=$2 AND status <> 'CANCELLED') + $4
			<= (SELECT r.capacity FROM launches l JOIN rockets r ON r.id = l.rocket_id WHERE l.id = $2)
		RETURNING created_at, updated_at`,
		booking.ID, booking.LaunchID, booking.CustomerID, booking.Seats, booking.TotalPriceCents, booking.Status, booking.PaymentStatus).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCapacityExceeded
	}
	return err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByLaunch(ctx context.Context, launchID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE launch_id=$1 AND status <> 'CANCELLED' ORDER BY created_at`, launchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_id=$1 ORDER BY created_at`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus domain.PaymentStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, payment_status=$2, updated_at=now() WHERE id=$3 RETURNING `+bookingColumns, status, paymentStatus, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) TotalBookedSeats(ctx context.Context, launchID string) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE launch_id=$1 AND status <> 'CANCELLED'`, launchID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
