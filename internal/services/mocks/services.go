// Package mocks holds testify mocks for the service interfaces, used by the
// handler tests.
package mocks

import (
	"context"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type SaleService struct {
	mock.Mock
}

func (m *SaleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	args := m.Called(ctx, req)
	if sale, ok := args.Get(0).(*models.Sale); ok {
		return sale, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *SaleService) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	args := m.Called(ctx, id)
	if sale, ok := args.Get(0).(*models.Sale); ok {
		return sale, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *SaleService) ListSales(ctx context.Context, page, pageSize int) ([]*models.Sale, int, error) {
	args := m.Called(ctx, page, pageSize)
	if sales, ok := args.Get(0).([]*models.Sale); ok {
		return sales, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *SaleService) ListSalesByCustomer(ctx context.Context, customerID int64, page, pageSize int) ([]*models.Sale, int, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	if sales, ok := args.Get(0).([]*models.Sale); ok {
		return sales, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *SaleService) UpdateSalePayment(ctx context.Context, id int64, req *models.UpdateSalePaymentRequest) (*models.Sale, error) {
	args := m.Called(ctx, id, req)
	if sale, ok := args.Get(0).(*models.Sale); ok {
		return sale, args.Error(1)
	}

	return nil, args.Error(1)
}

type CustomerService struct {
	mock.Mock
}

func (m *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerService) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerService) GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error) {
	args := m.Called(ctx, telephone)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, id, req)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerService) DeactivateCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CustomerService) ListCustomers(ctx context.Context, page, pageSize int) ([]*models.Customer, int, error) {
	args := m.Called(ctx, page, pageSize)
	if customers, ok := args.Get(0).([]*models.Customer); ok {
		return customers, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *CustomerService) SearchCustomers(ctx context.Context, name string, page, pageSize int) ([]*models.Customer, int, error) {
	args := m.Called(ctx, name, page, pageSize)
	if customers, ok := args.Get(0).([]*models.Customer); ok {
		return customers, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type StaffService struct {
	mock.Mock
}

func (m *StaffService) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.Staff, error) {
	args := m.Called(ctx, req)
	if staff, ok := args.Get(0).(*models.Staff); ok {
		return staff, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *StaffService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *StaffService) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if staff, ok := args.Get(0).(*models.Staff); ok {
		return staff, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *StaffService) UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.Staff, error) {
	args := m.Called(ctx, id, req)
	if staff, ok := args.Get(0).(*models.Staff); ok {
		return staff, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *StaffService) DeleteStaff(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *StaffService) ListStaff(ctx context.Context, page, pageSize int) ([]*models.Staff, int, error) {
	args := m.Called(ctx, page, pageSize)
	if staffMembers, ok := args.Get(0).([]*models.Staff); ok {
		return staffMembers, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}
