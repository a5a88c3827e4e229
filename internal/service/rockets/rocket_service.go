package rockets

import (
	"context"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/Domenick1991/rocketbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RocketUseCase interface {
	Create(ctx context.Context, input CreateRocketInput) (*domain.Rocket, error)
	GetByID(ctx context.Context, id string) (*domain.Rocket, error)
	List(ctx context.Context, limit, offset int) ([]domain.Rocket, error)
	Update(ctx context.Context, id string, input UpdateRocketInput) (*domain.Rocket, error)
	Delete(ctx context.Context, id string) error
}

type RocketService struct {
	repo     repository.RocketRepository
	launches repository.LaunchRepository
	bookings repository.BookingRepository
	logger   *zap.Logger
}

type CreateRocketInput struct {
	Name     string               `json:"name"`
	Capacity int                  `json:"capacity"`
	Range    domain.RangeCategory `json:"range"`
}

type UpdateRocketInput struct {
	Name     *string               `json:"name"`
	Capacity *int                  `json:"capacity"`
	Range    *domain.RangeCategory `json:"range"`
}

func NewRocketService(repo repository.RocketRepository, launches repository.LaunchRepository, bookings repository.BookingRepository, logger *zap.Logger) *RocketService {
	return &RocketService{repo: repo, launches: launches, bookings: bookings, logger: logger}
}

func validateCapacity(vErr *domain.ValidationError, capacity int) {
	if capacity < domain.MinRocketCapacity || capacity > domain.MaxRocketCapacity {
		vErr.Add("capacity", "must be between 1 and 10")
	}
}

func (s *RocketService) Create(ctx context.Context, input CreateRocketInput) (*domain.Rocket, error) {
	vErr := &domain.ValidationError{}
	if input.Name == "" {
		vErr.Add("name", "is required")
	}
	validateCapacity(vErr, input.Capacity)
	if !input.Range.Valid() {
		vErr.Add("range", "unknown range category")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	rocket := &domain.Rocket{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Capacity: input.Capacity,
		Range:    input.Range,
	}
	if err := s.repo.Create(ctx, rocket); err != nil {
		return nil, err
	}
	return rocket, nil
}

func (s *RocketService) GetByID(ctx context.Context, id string) (*domain.Rocket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RocketService) List(ctx context.Context, limit, offset int) ([]domain.Rocket, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update refuses to shrink capacity below the highest non-cancelled seat
// total among the rocket's launches; existing bookings are never
// invalidated retroactively.
func (s *RocketService) Update(ctx context.Context, id string, input UpdateRocketInput) (*domain.Rocket, error) {
	rocket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		rocket.Name = *input.Name
	}
	if input.Range != nil {
		if !input.Range.Valid() {
			return nil, domain.NewValidationError("range", "unknown range category")
		}
		rocket.Range = *input.Range
	}
	if input.Capacity != nil {
		vErr := &domain.ValidationError{}
		validateCapacity(vErr, *input.Capacity)
		if vErr.HasErrors() {
			return nil, vErr
		}
		if *input.Capacity < rocket.Capacity {
			maxBooked, err := s.maxBookedSeats(ctx, id)
			if err != nil {
				return nil, err
			}
			if *input.Capacity < maxBooked {
				return nil, domain.NewBusinessRuleError("capacity cannot be reduced below %d already-booked seats", maxBooked)
			}
		}
		rocket.Capacity = *input.Capacity
	}

	if err := s.repo.Update(ctx, rocket); err != nil {
		return nil, err
	}
	return rocket, nil
}

func (s *RocketService) Delete(ctx context.Context, id string) error {
	launches, err := s.launches.ListByRocket(ctx, id)
	if err != nil {
		return err
	}
	if len(launches) > 0 {
		return domain.NewBusinessRuleError("rocket has launches assigned")
	}
	return s.repo.Delete(ctx, id)
}

func (s *RocketService) maxBookedSeats(ctx context.Context, rocketID string) (int, error) {
	launches, err := s.launches.ListByRocket(ctx, rocketID)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, l := range launches {
		booked, err := s.bookings.TotalBookedSeats(ctx, l.ID)
		if err != nil {
			return 0, err
		}
		if booked > max {
			max = booked
		}
	}
	return max, nil
}

var _ RocketUseCase = (*RocketService)(nil)
