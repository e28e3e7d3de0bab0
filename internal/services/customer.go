package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pahanaedu/pos-platform/internal/cache"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error)
	DeactivateCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context, page, pageSize int) ([]*models.Customer, int, error)
	SearchCustomers(ctx context.Context, name string, page, pageSize int) ([]*models.Customer, int, error)
}

type customerService struct {
	repo      repository.CustomerRepository
	cache     cache.CustomerCache
	sanitizer *bluemonday.Policy
}

func NewCustomerService(repo repository.CustomerRepository, customerCache cache.CustomerCache) CustomerService {
	return &customerService{
		repo:      repo,
		cache:     customerCache,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {

	existing, err := s.repo.GetCustomerByTelephone(ctx, req.Telephone)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check existing customer").WithError(err)
	}

	if existing != nil {
		return nil, errors.DuplicateEntryError("A customer with this telephone already exists")
	}

	customer := &models.Customer{
		Name:      s.sanitizer.Sanitize(req.Name),
		Telephone: req.Telephone,
		Address:   s.sanitizer.Sanitize(req.Address),
	}

	err = s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create customer").WithError(err)
	}

	return customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {

	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Customer not found").WithError(err)
	}

	return customer, nil
}

// GetCustomerByTelephone is the billing screen's resolver lookup. The cache
// absorbs the per-keystroke traffic; NotFound means the cashier is about to
// register a new customer, not a failure.
func (s *customerService) GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error) {

	if cached, ok := s.cache.GetByTelephone(ctx, telephone); ok {
		return cached, nil
	}

	customer, err := s.repo.GetCustomerByTelephone(ctx, telephone)
	if err != nil {
		return nil, errors.DatabaseError("Failed to look up customer").WithError(err)
	}

	if customer == nil {
		return nil, errors.NotFoundError("Customer not found")
	}

	s.cache.SetByTelephone(ctx, customer)

	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {

	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Customer not found").WithError(err)
	}

	// The old number may still be cached.
	previousTelephone := customer.Telephone

	customer.Name = s.sanitizer.Sanitize(req.Name)
	customer.Telephone = req.Telephone
	customer.Address = s.sanitizer.Sanitize(req.Address)

	err = s.repo.UpdateCustomer(ctx, customer)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update customer").WithError(err)
	}

	s.cache.Invalidate(ctx, previousTelephone)
	if customer.Telephone != previousTelephone {
		s.cache.Invalidate(ctx, customer.Telephone)
	}

	return customer, nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, id int64) error {

	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return errors.NotFoundError("Customer not found").WithError(err)
	}

	err = s.repo.DeactivateCustomer(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to deactivate customer").WithError(err)
	}

	s.cache.Invalidate(ctx, customer.Telephone)

	return nil
}

func (s *customerService) ListCustomers(ctx context.Context, page, pageSize int) ([]*models.Customer, int, error) {

	customers, total, err := s.repo.ListCustomers(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch customers").WithError(err)
	}

	return customers, total, nil
}

func (s *customerService) SearchCustomers(ctx context.Context, name string, page, pageSize int) ([]*models.Customer, int, error) {

	customers, total, err := s.repo.SearchCustomersByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to search customers").WithError(err)
	}

	return customers, total, nil
}
