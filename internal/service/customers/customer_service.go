package customers

import (
	"context"
	"errors"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/Domenick1991/rocketbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerUseCase interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	repo   repository.CustomerRepository
	logger *zap.Logger
}

type CreateCustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateCustomerInput has no email field: the address is immutable after
// creation because bookings are looked up through it.
type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func NewCustomerService(repo repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	vErr := &domain.ValidationError{}
	if input.Name == "" {
		vErr.Add("name", "is required")
	}
	if !domain.ValidEmail(input.Email) {
		vErr.Add("email", "must be a valid email address")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	customer := &domain.Customer{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: domain.NormalizeEmail(input.Email),
		Phone: input.Phone,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.NewValidationError("email", "email already registered")
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *CustomerService) Update(ctx context.Context, id string, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ CustomerUseCase = (*CustomerService)(nil)
