// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *CustomerRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CustomerRepository) GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error) {
	args := m.Called(ctx, telephone)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CustomerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *CustomerRepository) DeactivateCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CustomerRepository) ListCustomers(ctx context.Context, page, size int) ([]*models.Customer, int, error) {
	args := m.Called(ctx, page, size)
	if customers, ok := args.Get(0).([]*models.Customer); ok {
		return customers, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *CustomerRepository) SearchCustomersByName(ctx context.Context, name string, page, size int) ([]*models.Customer, int, error) {
	args := m.Called(ctx, name, page, size)
	if customers, ok := args.Get(0).([]*models.Customer); ok {
		return customers, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) DeleteItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ItemRepository) ListItems(ctx context.Context, page, size int) ([]*models.Item, int, error) {
	args := m.Called(ctx, page, size)
	if items, ok := args.Get(0).([]*models.Item); ok {
		return items, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *ItemRepository) SearchItemsByName(ctx context.Context, name string, page, size int) ([]*models.Item, int, error) {
	args := m.Called(ctx, name, page, size)
	if items, ok := args.Get(0).([]*models.Item); ok {
		return items, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *ItemRepository) ListItemsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Item, int, error) {
	args := m.Called(ctx, categoryID, page, size)
	if items, ok := args.Get(0).([]*models.Item); ok {
		return items, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *ItemRepository) ListLowStockItems(ctx context.Context, threshold int) ([]*models.Item, error) {
	args := m.Called(ctx, threshold)
	if items, ok := args.Get(0).([]*models.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*models.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryRepository) ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error) {
	args := m.Called(ctx, page, size)
	if categories, ok := args.Get(0).([]*models.Category); ok {
		return categories, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type StaffRepository struct {
	mock.Mock
}

func (m *StaffRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *StaffRepository) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if staff, ok := args.Get(0).(*models.Staff); ok {
		return staff, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StaffRepository) GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	args := m.Called(ctx, username)
	if staff, ok := args.Get(0).(*models.Staff); ok {
		return staff, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StaffRepository) UpdateStaff(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *StaffRepository) DeleteStaff(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StaffRepository) ListStaff(ctx context.Context, page, size int) ([]*models.Staff, int, error) {
	args := m.Called(ctx, page, size)
	if staffMembers, ok := args.Get(0).([]*models.Staff); ok {
		return staffMembers, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type SaleRepository struct {
	mock.Mock
}

func (m *SaleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *SaleRepository) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	args := m.Called(ctx, id)
	if sale, ok := args.Get(0).(*models.Sale); ok {
		return sale, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SaleRepository) ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error) {
	args := m.Called(ctx, page, size)
	if sales, ok := args.Get(0).([]*models.Sale); ok {
		return sales, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *SaleRepository) ListSalesByCustomer(ctx context.Context, customerID int64, page, size int) ([]*models.Sale, int, error) {
	args := m.Called(ctx, customerID, page, size)
	if sales, ok := args.Get(0).([]*models.Sale); ok {
		return sales, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *SaleRepository) UpdateSalePayment(ctx context.Context, id int64, paid decimal.Decimal) (*models.Sale, error) {
	args := m.Called(ctx, id, paid)
	if sale, ok := args.Get(0).(*models.Sale); ok {
		return sale, args.Error(1)
	}
	return nil, args.Error(1)
}

type AnalyticsRepository struct {
	mock.Mock
}

func (m *AnalyticsRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*models.DashboardStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
