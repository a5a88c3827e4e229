package booking

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/Domenick1991/rocketbooking/internal/kafka"
	"github.com/Domenick1991/rocketbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.BookingDetails, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListByLaunch(ctx context.Context, launchID string) ([]domain.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, input UpdateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type Cache interface {
	InvalidateLaunches(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

// Notification events drive customer-facing email; they get a few delivery
// attempts where the main event stream stays fire-and-forget.
const notificationPublishRetries = 3

type BookingService struct {
	bookings           repository.BookingRepository
	launches           repository.LaunchRepository
	rockets            repository.RocketRepository
	customers          repository.CustomerRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	locks              *launchLocks
	logger             *zap.Logger
}

type CreateBookingInput struct {
	LaunchID      string `json:"launch_id"`
	CustomerEmail string `json:"customer_email"`
	Seats         int    `json:"seats"`
}

// UpdateBookingInput deliberately exposes only the two mutable fields.
// Seats and entity references stay fixed for the life of the booking so the
// capacity accounting cannot be bypassed through the update path.
type UpdateBookingInput struct {
	Status        *domain.BookingStatus `json:"status"`
	PaymentStatus *domain.PaymentStatus `json:"payment_status"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	launches repository.LaunchRepository,
	rockets repository.RocketRepository,
	customers repository.CustomerRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		launches:     launches,
		rockets:      rockets,
		customers:    customers,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		locks:        newLaunchLocks(),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking admits or rejects a reservation. Steps 1-5 are pure reads;
// the capacity check and the insert run under the launch's mutex so the
// non-cancelled seat total can never exceed the rocket capacity.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.BookingDetails, error) {
	vErr := &domain.ValidationError{}
	if input.LaunchID == "" {
		vErr.Add("launch_id", "is required")
	}
	if !domain.ValidEmail(input.CustomerEmail) {
		vErr.Add("customer_email", "must be a valid email address")
	}
	if input.Seats < 1 {
		vErr.Add("seats", "must be a positive integer")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	email := domain.NormalizeEmail(input.CustomerEmail)
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("customer_email", "customer not found")
		}
		return nil, err
	}

	launch, err := s.launches.GetByID(ctx, input.LaunchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("launch_id", "launch not found")
		}
		return nil, err
	}

	if launch.Status != domain.LaunchStatusActive {
		return nil, domain.NewBusinessRuleError("launch is not available for booking")
	}

	// A launch can only be created against an existing rocket, so a failed
	// lookup here means the stored data is inconsistent.
	rocket, err := s.rockets.GetByID(ctx, launch.RocketID)
	if err != nil {
		s.logger.Error("launch references missing rocket",
			zap.String("launch_id", launch.ID), zap.String("rocket_id", launch.RocketID), zap.Error(err))
		return nil, domain.NewConsistencyError("rocket not found for launch "+launch.ID, err)
	}

	unlock := s.locks.Lock(launch.ID)
	defer unlock()

	booked, err := s.bookings.TotalBookedSeats(ctx, launch.ID)
	if err != nil {
		return nil, err
	}
	if input.Seats > rocket.Capacity-booked {
		return nil, domain.NewBusinessRuleError("insufficient seats available")
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		LaunchID:        launch.ID,
		CustomerID:      customer.ID,
		Seats:           input.Seats,
		TotalPriceCents: int64(input.Seats) * launch.PricePerSeatCents,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
	}

	if err := s.bookings.Save(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, domain.NewBusinessRuleError("insufficient seats available")
		}
		return nil, err
	}

	s.publish(ctx, "booking_created", booking, customer.Email)
	s.invalidate(ctx)

	return &domain.BookingDetails{
		Booking:                 *booking,
		CustomerEmail:           customer.Email,
		RocketName:              rocket.Name,
		LaunchPricePerSeatCents: launch.PricePerSeatCents,
	}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListByLaunch(ctx context.Context, launchID string) ([]domain.Booking, error) {
	if _, err := s.launches.GetByID(ctx, launchID); err != nil {
		return nil, err
	}
	return s.bookings.ListByLaunch(ctx, launchID)
}

func (s *BookingService) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	customer, err := s.customers.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByCustomer(ctx, customer.ID)
}

func (s *BookingService) UpdateBooking(ctx context.Context, id string, input UpdateBookingInput) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := current.Status
	paymentStatus := current.PaymentStatus
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.NewValidationError("status", "unknown booking status")
		}
		status = *input.Status
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.Valid() {
			return nil, domain.NewValidationError("payment_status", "unknown payment status")
		}
		paymentStatus = *input.PaymentStatus
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status, paymentStatus)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_updated", updated, "")
	if status == domain.BookingStatusCancelled && current.Status != domain.BookingStatusCancelled {
		s.invalidate(ctx)
	}
	return updated, nil
}

// CancelBooking is idempotent: cancelling a cancelled booking returns it
// unchanged. Cancelled seats are released immediately because every
// aggregate excludes cancelled rows.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled, current.PaymentStatus)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_cancelled", updated, "")
	s.invalidate(ctx)
	return updated, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		LaunchID:        booking.LaunchID,
		CustomerEmail:   email,
		Seats:           booking.Seats,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		PaymentStatus:   string(booking.PaymentStatus),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		s.logger.Warn("failed to publish booking event", zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.PublishWithRetry(ctx, s.notificationsTopic, booking.ID, event, notificationPublishRetries); err != nil {
			s.logger.Warn("failed to publish notification event", zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLaunches(ctx); err != nil {
		s.logger.Warn("failed to invalidate launches cache", zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
