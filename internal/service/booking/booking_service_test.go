package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByLaunch(ctx context.Context, launchID string) ([]domain.Booking, error) {
	args := m.Called(ctx, launchID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, paymentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) TotalBookedSeats(ctx context.Context, launchID string) (int, error) {
	args := m.Called(ctx, launchID)
	return args.Int(0), args.Error(1)
}

type MockLaunchRepository struct {
	mock.Mock
}

func (m *MockLaunchRepository) Create(ctx context.Context, launch *domain.Launch) error {
	args := m.Called(ctx, launch)
	return args.Error(0)
}

func (m *MockLaunchRepository) GetByID(ctx context.Context, id string) (*domain.Launch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Launch), args.Error(1)
}

func (m *MockLaunchRepository) List(ctx context.Context, limit, offset int) ([]domain.Launch, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Launch), args.Error(1)
}

func (m *MockLaunchRepository) ListByRocket(ctx context.Context, rocketID string) ([]domain.Launch, error) {
	args := m.Called(ctx, rocketID)
	return args.Get(0).([]domain.Launch), args.Error(1)
}

func (m *MockLaunchRepository) Update(ctx context.Context, launch *domain.Launch) error {
	args := m.Called(ctx, launch)
	return args.Error(0)
}

func (m *MockLaunchRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRocketRepository struct {
	mock.Mock
}

func (m *MockRocketRepository) Create(ctx context.Context, rocket *domain.Rocket) error {
	args := m.Called(ctx, rocket)
	return args.Error(0)
}

func (m *MockRocketRepository) GetByID(ctx context.Context, id string) (*domain.Rocket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rocket), args.Error(1)
}

func (m *MockRocketRepository) List(ctx context.Context, limit, offset int) ([]domain.Rocket, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Rocket), args.Error(1)
}

func (m *MockRocketRepository) Update(ctx context.Context, rocket *domain.Rocket) error {
	args := m.Called(ctx, rocket)
	return args.Error(0)
}

func (m *MockRocketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateLaunches(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error {
	args := m.Called(ctx, topic, key, value, maxRetries)
	return args.Error(0)
}

type bookingMocks struct {
	bookings  *MockBookingRepository
	launches  *MockLaunchRepository
	rockets   *MockRocketRepository
	customers *MockCustomerRepository
	cache     *MockCache
	producer  *MockProducer
}

func newTestService(t *testing.T) (*BookingService, *bookingMocks) {
	t.Helper()
	m := &bookingMocks{
		bookings:  &MockBookingRepository{},
		launches:  &MockLaunchRepository{},
		rockets:   &MockRocketRepository{},
		customers: &MockCustomerRepository{},
		cache:     &MockCache{},
		producer:  &MockProducer{},
	}
	service := NewBookingService(
		m.bookings, m.launches, m.rockets, m.customers,
		m.cache, m.producer, "booking-events", zap.NewNop(),
		WithNotificationsTopic("booking-notifications"),
	)
	return service, m
}

func testCustomer() *domain.Customer {
	return &domain.Customer{ID: "cust-1", Name: "Alice", Email: "a@x.com"}
}

func testLaunch(status domain.LaunchStatus) *domain.Launch {
	return &domain.Launch{
		ID:                "launch-1",
		RocketID:          "rocket-1",
		Date:              time.Now().Add(24 * time.Hour),
		PricePerSeatCents: 10000,
		Status:            status,
	}
}

func testRocket() *domain.Rocket {
	return &domain.Rocket{ID: "rocket-1", Name: "Ion Drive", Capacity: 5, Range: domain.RangeLunar}
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
	m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
	m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(0, nil).Once()
	m.bookings.On("Save", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()
	m.producer.On("PublishWithRetry", ctx, "booking-notifications", mock.Anything, mock.Anything, 3).Return(nil).Once()
	m.cache.On("InvalidateLaunches", ctx).Return(nil).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: "a@x.com",
		Seats:         3,
	})

	assert.NoError(t, err)
	assert.NotNil(t, details)
	assert.NotEmpty(t, details.ID)
	assert.Equal(t, 3, details.Seats)
	assert.Equal(t, int64(30000), details.TotalPriceCents)
	assert.Equal(t, domain.BookingStatusPending, details.Status)
	assert.Equal(t, domain.PaymentStatusPending, details.PaymentStatus)
	assert.Equal(t, "a@x.com", details.CustomerEmail)
	assert.Equal(t, "Ion Drive", details.RocketName)
	assert.Equal(t, int64(10000), details.LaunchPricePerSeatCents)

	m.customers.AssertExpectations(t)
	m.bookings.AssertExpectations(t)
	m.producer.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestBookingService_CreateBooking_CollectsFieldErrors(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "",
		CustomerEmail: "not-an-email",
		Seats:         0,
	})

	assert.Nil(t, details)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)

	m.customers.AssertNotCalled(t, "GetByEmail")
	m.bookings.AssertNotCalled(t, "Save")
}

func TestBookingService_CreateBooking_FieldValidationCases(t *testing.T) {
	testCases := []struct {
		name  string
		input CreateBookingInput
		field string
	}{
		{
			name:  "missing launch id",
			input: CreateBookingInput{CustomerEmail: "a@x.com", Seats: 1},
			field: "launch_id",
		},
		{
			name:  "malformed email",
			input: CreateBookingInput{LaunchID: "launch-1", CustomerEmail: "a@x", Seats: 1},
			field: "customer_email",
		},
		{
			name:  "negative seats",
			input: CreateBookingInput{LaunchID: "launch-1", CustomerEmail: "a@x.com", Seats: -2},
			field: "seats",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestService(t)
			details, err := service.CreateBooking(context.Background(), tc.input)
			assert.Nil(t, details)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Fields[0].Field)
		})
	}
}

func TestBookingService_CreateBooking_UnknownCustomer(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "ghost@x.com").Return(nil, domain.ErrNotFound).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: "ghost@x.com",
		Seats:         1,
	})

	assert.Nil(t, details)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "customer_email", vErr.Fields[0].Field)

	m.launches.AssertNotCalled(t, "GetByID")
	m.bookings.AssertNotCalled(t, "Save")
}

func TestBookingService_CreateBooking_EmailNormalization(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	// Registered as a@x.com, requested as " A@X.COM ".
	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
	m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
	m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(0, nil).Once()
	m.bookings.On("Save", ctx, mock.Anything).Return(nil).Once()
	m.producer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.producer.On("PublishWithRetry", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.cache.On("InvalidateLaunches", ctx).Return(nil).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: " A@X.COM ",
		Seats:         1,
	})

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", details.CustomerID)
	m.customers.AssertExpectations(t)
}

func TestBookingService_CreateBooking_UnknownLaunch(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-404").Return(nil, domain.ErrNotFound).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-404",
		CustomerEmail: "a@x.com",
		Seats:         1,
	})

	assert.Nil(t, details)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "launch_id", vErr.Fields[0].Field)
	m.bookings.AssertNotCalled(t, "Save")
}

func TestBookingService_CreateBooking_LaunchNotActive(t *testing.T) {
	for _, status := range []domain.LaunchStatus{
		domain.LaunchStatusScheduled,
		domain.LaunchStatusCompleted,
		domain.LaunchStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			service, m := newTestService(t)
			ctx := context.Background()

			m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
			m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(status), nil).Once()

			details, err := service.CreateBooking(ctx, CreateBookingInput{
				LaunchID:      "launch-1",
				CustomerEmail: "a@x.com",
				Seats:         1,
			})

			assert.Nil(t, details)
			var bErr *domain.BusinessRuleError
			assert.ErrorAs(t, err, &bErr)
			assert.Contains(t, bErr.Message, "not available for booking")
			m.bookings.AssertNotCalled(t, "Save")
		})
	}
}

func TestBookingService_CreateBooking_MissingRocket(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	m := &bookingMocks{
		bookings:  &MockBookingRepository{},
		launches:  &MockLaunchRepository{},
		rockets:   &MockRocketRepository{},
		customers: &MockCustomerRepository{},
	}
	service := NewBookingService(m.bookings, m.launches, m.rockets, m.customers, nil, nil, "", zap.New(core))
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
	m.rockets.On("GetByID", ctx, "rocket-1").Return(nil, domain.ErrNotFound).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: "a@x.com",
		Seats:         1,
	})

	assert.Nil(t, details)
	var cErr *domain.ConsistencyError
	assert.ErrorAs(t, err, &cErr)
	m.bookings.AssertNotCalled(t, "Save")

	// The broken reference is logged even though the caller only sees a
	// generic failure.
	assert.Equal(t, 1, logs.FilterMessage("launch references missing rocket").Len())
}

func TestBookingService_CreateBooking_CapacityBoundary(t *testing.T) {
	// Capacity 5 with 4 seats booked: one more seat fits, two do not.
	t.Run("exact fit admitted", func(t *testing.T) {
		service, m := newTestService(t)
		ctx := context.Background()

		m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
		m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
		m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
		m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(4, nil).Once()
		m.bookings.On("Save", ctx, mock.Anything).Return(nil).Once()
		m.producer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.producer.On("PublishWithRetry", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.cache.On("InvalidateLaunches", ctx).Return(nil).Once()

		details, err := service.CreateBooking(ctx, CreateBookingInput{
			LaunchID:      "launch-1",
			CustomerEmail: "a@x.com",
			Seats:         1,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, details.Seats)
	})

	t.Run("one seat over rejected", func(t *testing.T) {
		service, m := newTestService(t)
		ctx := context.Background()

		m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
		m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
		m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
		m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(4, nil).Once()

		details, err := service.CreateBooking(ctx, CreateBookingInput{
			LaunchID:      "launch-1",
			CustomerEmail: "a@x.com",
			Seats:         2,
		})

		assert.Nil(t, details)
		var bErr *domain.BusinessRuleError
		assert.ErrorAs(t, err, &bErr)
		assert.Equal(t, "insufficient seats available", bErr.Message)
		m.bookings.AssertNotCalled(t, "Save")
	})
}

func TestBookingService_CreateBooking_RepositoryError(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
	m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
	m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(0, nil).Once()

	expectedErr := errors.New("database error")
	m.bookings.On("Save", ctx, mock.Anything).Return(expectedErr).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: "a@x.com",
		Seats:         1,
	})

	assert.Nil(t, details)
	assert.Equal(t, expectedErr, err)
	m.producer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CancelBooking_Success(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	pending := &domain.Booking{ID: "b-1", LaunchID: "launch-1", Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusPending}
	cancelled := &domain.Booking{ID: "b-1", LaunchID: "launch-1", Status: domain.BookingStatusCancelled, PaymentStatus: domain.PaymentStatusPending}

	m.bookings.On("GetByID", ctx, "b-1").Return(pending, nil).Once()
	m.bookings.On("UpdateStatus", ctx, "b-1", domain.BookingStatusCancelled, domain.PaymentStatusPending).Return(cancelled, nil).Once()
	m.producer.On("Publish", ctx, mock.Anything, "b-1", mock.Anything).Return(nil)
	m.producer.On("PublishWithRetry", ctx, mock.Anything, "b-1", mock.Anything, mock.Anything).Return(nil)
	m.cache.On("InvalidateLaunches", ctx).Return(nil).Once()

	result, err := service.CancelBooking(ctx, "b-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	m.bookings.AssertExpectations(t)
}

func TestBookingService_CancelBooking_Idempotent(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	cancelled := &domain.Booking{ID: "b-1", Status: domain.BookingStatusCancelled}
	m.bookings.On("GetByID", ctx, "b-1").Return(cancelled, nil).Once()

	result, err := service.CancelBooking(ctx, "b-1")

	assert.NoError(t, err)
	assert.Equal(t, cancelled, result)
	m.bookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_UpdateBooking_PaymentStatusOnly(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	current := &domain.Booking{ID: "b-1", Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusPending}
	updated := &domain.Booking{ID: "b-1", Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusCompleted}

	m.bookings.On("GetByID", ctx, "b-1").Return(current, nil).Once()
	m.bookings.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.PaymentStatusCompleted).Return(updated, nil).Once()
	m.producer.On("Publish", ctx, mock.Anything, "b-1", mock.Anything).Return(nil)
	m.producer.On("PublishWithRetry", ctx, mock.Anything, "b-1", mock.Anything, mock.Anything).Return(nil)

	paid := domain.PaymentStatusCompleted
	result, err := service.UpdateBooking(ctx, "b-1", UpdateBookingInput{PaymentStatus: &paid})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, result.PaymentStatus)
	m.bookings.AssertExpectations(t)
}

func TestBookingService_UpdateBooking_RejectsUnknownStatus(t *testing.T) {
	service, m := newTestService(t)
	ctx := context.Background()

	current := &domain.Booking{ID: "b-1", Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusPending}
	m.bookings.On("GetByID", ctx, "b-1").Return(current, nil).Once()

	bogus := domain.BookingStatus("TELEPORTED")
	result, err := service.UpdateBooking(ctx, "b-1", UpdateBookingInput{Status: &bogus})

	assert.Nil(t, result)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	m.bookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_NoProducerNoCache(t *testing.T) {
	m := &bookingMocks{
		bookings:  &MockBookingRepository{},
		launches:  &MockLaunchRepository{},
		rockets:   &MockRocketRepository{},
		customers: &MockCustomerRepository{},
	}
	service := NewBookingService(m.bookings, m.launches, m.rockets, m.customers, nil, nil, "", zap.NewNop())
	ctx := context.Background()

	m.customers.On("GetByEmail", ctx, "a@x.com").Return(testCustomer(), nil).Once()
	m.launches.On("GetByID", ctx, "launch-1").Return(testLaunch(domain.LaunchStatusActive), nil).Once()
	m.rockets.On("GetByID", ctx, "rocket-1").Return(testRocket(), nil).Once()
	m.bookings.On("TotalBookedSeats", ctx, "launch-1").Return(0, nil).Once()
	m.bookings.On("Save", ctx, mock.Anything).Return(nil).Once()

	details, err := service.CreateBooking(ctx, CreateBookingInput{
		LaunchID:      "launch-1",
		CustomerEmail: "a@x.com",
		Seats:         2,
	})

	assert.NoError(t, err)
	assert.NotNil(t, details)
	m.bookings.AssertExpectations(t)
}
