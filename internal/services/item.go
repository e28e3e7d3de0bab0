package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pahanaedu/pos-platform/internal/cache"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
	"github.com/shopspring/decimal"
)

type ItemService interface {
	CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error)
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, req *models.UpdateItemRequest) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, page, pageSize int) ([]*models.Item, int, error)
	SearchItems(ctx context.Context, name string, page, pageSize int) ([]*models.Item, int, error)
	ListItemsByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]*models.Item, int, error)
	ListLowStockItems(ctx context.Context, threshold int) ([]*models.Item, error)
}

type itemService struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	searchCache  cache.ItemSearchCache
	sanitizer    *bluemonday.Policy
}

func NewItemService(repo repository.ItemRepository, categoryRepo repository.CategoryRepository, searchCache cache.ItemSearchCache) ItemService {
	return &itemService{
		repo:         repo,
		categoryRepo: categoryRepo,
		searchCache:  searchCache,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

var oneHundred = decimal.NewFromInt(100)

func validateItemPricing(unitPrice, discount decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errors.ValidationError("Unit price cannot be negative")
	}

	if discount.IsNegative() || discount.GreaterThan(oneHundred) {
		return errors.ValidationError("Discount must be a percentage between 0 and 100")
	}

	return nil
}

func (s *itemService) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {

	if err := validateItemPricing(req.UnitPrice, req.Discount); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	item := &models.Item{
		Name:               s.sanitizer.Sanitize(req.Name),
		UnitPrice:          req.UnitPrice,
		StockAvailable:     req.StockAvailable,
		Discount:           req.Discount,
		QtyToAllowDiscount: req.QtyToAllowDiscount,
		CategoryID:         req.CategoryID,
	}

	err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create item").WithError(err)
	}

	return item, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Item not found").WithError(err)
	}

	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, req *models.UpdateItemRequest) (*models.Item, error) {

	if err := validateItemPricing(req.UnitPrice, req.Discount); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Item not found").WithError(err)
	}

	if req.CategoryID != item.CategoryID {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}
	}

	item.Name = s.sanitizer.Sanitize(req.Name)
	item.UnitPrice = req.UnitPrice
	item.StockAvailable = req.StockAvailable
	item.Discount = req.Discount
	item.QtyToAllowDiscount = req.QtyToAllowDiscount
	item.CategoryID = req.CategoryID

	err = s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update item").WithError(err)
	}

	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {

	err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return errors.NotFoundError("Item not found").WithError(err)
	}

	return nil
}

func (s *itemService) ListItems(ctx context.Context, page, pageSize int) ([]*models.Item, int, error) {

	items, total, err := s.repo.ListItems(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch items").WithError(err)
	}

	return items, total, nil
}

// SearchItems serves the billing screen's item picker, which fires on every
// keystroke. Result pages are cached briefly in Redis.
func (s *itemService) SearchItems(ctx context.Context, name string, page, pageSize int) ([]*models.Item, int, error) {

	if items, total, ok := s.searchCache.GetSearch(ctx, name, page, pageSize); ok {
		return items, total, nil
	}

	items, total, err := s.repo.SearchItemsByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to search items").WithError(err)
	}

	s.searchCache.SetSearch(ctx, name, page, pageSize, items, total)

	return items, total, nil
}

func (s *itemService) ListItemsByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]*models.Item, int, error) {

	items, total, err := s.repo.ListItemsByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch items for category").WithError(err)
	}

	return items, total, nil
}

func (s *itemService) ListLowStockItems(ctx context.Context, threshold int) ([]*models.Item, error) {

	if threshold < 0 {
		return nil, errors.ValidationError("Threshold cannot be negative")
	}

	items, err := s.repo.ListLowStockItems(ctx, threshold)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch low stock items").WithError(err)
	}

	return items, nil
}
