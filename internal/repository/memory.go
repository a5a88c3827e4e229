package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/rocketbooking/internal/domain"
)

// In-memory implementations of the repository interfaces. Each store owns
// its map outright; records are copied on the way in and out so callers
// never hold references into the container.

type MemoryRocketRepository struct {
	mu      sync.RWMutex
	rockets map[string]domain.Rocket
}

func NewMemoryRocketRepository() *MemoryRocketRepository {
	return &MemoryRocketRepository{rockets: make(map[string]domain.Rocket)}
}

func (r *MemoryRocketRepository) Create(_ context.Context, rocket *domain.Rocket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	rocket.CreatedAt = now
	rocket.UpdatedAt = now
	r.rockets[rocket.ID] = *rocket
	return nil
}

func (r *MemoryRocketRepository) GetByID(_ context.Context, id string) (*domain.Rocket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rk, ok := r.rockets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rk, nil
}

func (r *MemoryRocketRepository) List(_ context.Context, limit, offset int) ([]domain.Rocket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Rocket, 0, len(r.rockets))
	for _, rk := range r.rockets {
		all = append(all, rk)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *MemoryRocketRepository) Update(_ context.Context, rocket *domain.Rocket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rockets[rocket.ID]; !ok {
		return domain.ErrNotFound
	}
	rocket.UpdatedAt = time.Now()
	r.rockets[rocket.ID] = *rocket
	return nil
}

func (r *MemoryRocketRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rockets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rockets, id)
	return nil
}

type MemoryLaunchRepository struct {
	mu       sync.RWMutex
	launches map[string]domain.Launch
}

func NewMemoryLaunchRepository() *MemoryLaunchRepository {
	return &MemoryLaunchRepository{launches: make(map[string]domain.Launch)}
}

func (r *MemoryLaunchRepository) Create(_ context.Context, launch *domain.Launch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	launch.CreatedAt = now
	launch.UpdatedAt = now
	r.launches[launch.ID] = *launch
	return nil
}

func (r *MemoryLaunchRepository) GetByID(_ context.Context, id string) (*domain.Launch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.launches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r *MemoryLaunchRepository) List(_ context.Context, limit, offset int) ([]domain.Launch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Launch, 0, len(r.launches))
	for _, l := range r.launches {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return page(all, limit, offset), nil
}

func (r *MemoryLaunchRepository) ListByRocket(_ context.Context, rocketID string) ([]domain.Launch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	launches := make([]domain.Launch, 0)
	for _, l := range r.launches {
		if l.RocketID == rocketID {
			launches = append(launches, l)
		}
	}
	sort.Slice(launches, func(i, j int) bool { return launches[i].Date.Before(launches[j].Date) })
	return launches, nil
}

func (r *MemoryLaunchRepository) Update(_ context.Context, launch *domain.Launch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.launches[launch.ID]; !ok {
		return domain.ErrNotFound
	}
	launch.UpdatedAt = time.Now()
	r.launches[launch.ID] = *launch
	return nil
}

func (r *MemoryLaunchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.launches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.launches, id)
	return nil
}

type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
	byEmail   map[string]string
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[string]domain.Customer),
		byEmail:   make(map[string]string),
	}
}

func (r *MemoryCustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[customer.Email]; ok {
		return ErrDuplicateEmail
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	r.customers[customer.ID] = *customer
	r.byEmail[customer.Email] = customer.ID
	return nil
}

func (r *MemoryCustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *MemoryCustomerRepository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := r.customers[id]
	return &c, nil
}

func (r *MemoryCustomerRepository) List(_ context.Context, limit, offset int) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *MemoryCustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.customers[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	customer.Email = current.Email
	customer.CreatedAt = current.CreatedAt
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *MemoryCustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byEmail, c.Email)
	delete(r.customers, id)
	return nil
}

type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *MemoryBookingRepository) Save(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepository) ListByLaunch(_ context.Context, launchID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bookings := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.LaunchID == launchID && b.Status != domain.BookingStatusCancelled {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })
	return bookings, nil
}

func (r *MemoryBookingRepository) ListByCustomer(_ context.Context, customerID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bookings := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })
	return bookings, nil
}

func (r *MemoryBookingRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, paymentStatus domain.PaymentStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Status = status
	b.PaymentStatus = paymentStatus
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, nil
}

func (r *MemoryBookingRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *MemoryBookingRepository) TotalBookedSeats(_ context.Context, launchID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, b := range r.bookings {
		if b.LaunchID == launchID && b.Status != domain.BookingStatusCancelled {
			total += b.Seats
		}
	}
	return total, nil
}

// page applies the shared list contract: limit 0 means no limit. The
// postgres implementations encode the same rule with LIMIT NULLIF($1, 0).
func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

var (
	_ RocketRepository   = (*MemoryRocketRepository)(nil)
	_ LaunchRepository   = (*MemoryLaunchRepository)(nil)
	_ CustomerRepository = (*MemoryCustomerRepository)(nil)
	_ BookingRepository  = (*MemoryBookingRepository)(nil)
)
