package launches

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/Domenick1991/rocketbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LaunchUseCase interface {
	Create(ctx context.Context, input CreateLaunchInput) (*domain.Launch, error)
	GetByID(ctx context.Context, id string) (*domain.Launch, error)
	List(ctx context.Context, limit, offset int) ([]domain.Launch, error)
	Update(ctx context.Context, id string, input UpdateLaunchInput) (*domain.Launch, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, launchID string) (*domain.Availability, error)
}

type Cache interface {
	GetLaunches(ctx context.Context) ([]domain.Launch, error)
	SetLaunches(ctx context.Context, launches []domain.Launch) error
	InvalidateLaunches(ctx context.Context) error
}

type LaunchService struct {
	repo     repository.LaunchRepository
	rockets  repository.RocketRepository
	bookings repository.BookingRepository
	cache    Cache
	logger   *zap.Logger
}

type CreateLaunchInput struct {
	RocketID          string              `json:"rocket_id"`
	Date              time.Time           `json:"date"`
	PricePerSeatCents int64               `json:"price_per_seat_cents"`
	MinPassengers     int                 `json:"min_passengers"`
	Status            domain.LaunchStatus `json:"status"`
}

type UpdateLaunchInput struct {
	Date              *time.Time           `json:"date"`
	PricePerSeatCents *int64               `json:"price_per_seat_cents"`
	MinPassengers     *int                 `json:"min_passengers"`
	Status            *domain.LaunchStatus `json:"status"`
}

func NewLaunchService(repo repository.LaunchRepository, rockets repository.RocketRepository, bookings repository.BookingRepository, cache Cache, logger *zap.Logger) *LaunchService {
	return &LaunchService{repo: repo, rockets: rockets, bookings: bookings, cache: cache, logger: logger}
}

func (s *LaunchService) Create(ctx context.Context, input CreateLaunchInput) (*domain.Launch, error) {
	vErr := &domain.ValidationError{}
	if input.RocketID == "" {
		vErr.Add("rocket_id", "is required")
	}
	if !input.Date.After(time.Now()) {
		vErr.Add("date", "must be in the future")
	}
	if input.PricePerSeatCents <= 0 {
		vErr.Add("price_per_seat_cents", "must be positive")
	}
	if input.MinPassengers < 0 {
		vErr.Add("min_passengers", "must not be negative")
	}
	status := input.Status
	if status == "" {
		status = domain.LaunchStatusScheduled
	}
	if !status.Valid() {
		vErr.Add("status", "unknown launch status")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if _, err := s.rockets.GetByID(ctx, input.RocketID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("rocket_id", "rocket not found")
		}
		return nil, err
	}

	launch := &domain.Launch{
		ID:                uuid.NewString(),
		RocketID:          input.RocketID,
		Date:              input.Date,
		PricePerSeatCents: input.PricePerSeatCents,
		MinPassengers:     input.MinPassengers,
		Status:            status,
	}
	if err := s.repo.Create(ctx, launch); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return launch, nil
}

func (s *LaunchService) GetByID(ctx context.Context, id string) (*domain.Launch, error) {
	return s.repo.GetByID(ctx, id)
}

// List serves the full list cache-aside; paginated reads bypass the cache.
func (s *LaunchService) List(ctx context.Context, limit, offset int) ([]domain.Launch, error) {
	cacheable := limit == 0 && offset == 0
	if cacheable && s.cache != nil {
		if cached, err := s.cache.GetLaunches(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	launches, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if cacheable && s.cache != nil {
		if err := s.cache.SetLaunches(ctx, launches); err != nil {
			s.logger.Warn("failed to cache launches", zap.Error(err))
		}
	}
	return launches, nil
}

// Update leaves the rocket reference alone; moving a launch to another
// rocket would detach its bookings from the capacity they were admitted
// against.
func (s *LaunchService) Update(ctx context.Context, id string, input UpdateLaunchInput) (*domain.Launch, error) {
	launch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		launch.Date = *input.Date
	}
	if input.PricePerSeatCents != nil {
		if *input.PricePerSeatCents <= 0 {
			return nil, domain.NewValidationError("price_per_seat_cents", "must be positive")
		}
		launch.PricePerSeatCents = *input.PricePerSeatCents
	}
	if input.MinPassengers != nil {
		if *input.MinPassengers < 0 {
			return nil, domain.NewValidationError("min_passengers", "must not be negative")
		}
		launch.MinPassengers = *input.MinPassengers
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.NewValidationError("status", "unknown launch status")
		}
		launch.Status = *input.Status
	}

	if err := s.repo.Update(ctx, launch); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return launch, nil
}

func (s *LaunchService) Delete(ctx context.Context, id string) error {
	booked, err := s.bookings.TotalBookedSeats(ctx, id)
	if err != nil {
		return err
	}
	if booked > 0 {
		return domain.NewBusinessRuleError("launch has active bookings")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Availability derives the remaining seats from the booking aggregate. A
// missing launch or rocket is a hard failure, never a zero-availability
// answer: silently reporting 0 would mask broken data.
func (s *LaunchService) Availability(ctx context.Context, launchID string) (*domain.Availability, error) {
	launch, err := s.repo.GetByID(ctx, launchID)
	if err != nil {
		return nil, err
	}
	rocket, err := s.rockets.GetByID(ctx, launch.RocketID)
	if err != nil {
		s.logger.Error("launch references missing rocket",
			zap.String("launch_id", launch.ID), zap.String("rocket_id", launch.RocketID), zap.Error(err))
		return nil, domain.NewConsistencyError("rocket not found for launch "+launch.ID, err)
	}
	booked, err := s.bookings.TotalBookedSeats(ctx, launchID)
	if err != nil {
		return nil, err
	}
	return &domain.Availability{
		LaunchID:       launchID,
		TotalSeats:     rocket.Capacity,
		BookedSeats:    booked,
		AvailableSeats: rocket.Capacity - booked,
	}, nil
}

func (s *LaunchService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLaunches(ctx); err != nil {
		s.logger.Warn("failed to invalidate launches cache", zap.Error(err))
	}
}

var _ LaunchUseCase = (*LaunchService)(nil)
