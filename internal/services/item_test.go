package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/repositories/mocks"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeItemSearchCache struct {
	pages map[string]struct {
		items []*models.Item
		total int
	}
}

func newFakeItemSearchCache() *fakeItemSearchCache {
	return &fakeItemSearchCache{pages: map[string]struct {
		items []*models.Item
		total int
	}{}}
}

func (f *fakeItemSearchCache) key(name string, page, pageSize int) string {
	return fmt.Sprintf("%s:%d:%d", name, page, pageSize)
}

func (f *fakeItemSearchCache) GetSearch(_ context.Context, name string, page, pageSize int) ([]*models.Item, int, bool) {
	entry, ok := f.pages[f.key(name, page, pageSize)]

	return entry.items, entry.total, ok
}

func (f *fakeItemSearchCache) SetSearch(_ context.Context, name string, page, pageSize int, items []*models.Item, total int) {
	f.pages[f.key(name, page, pageSize)] = struct {
		items []*models.Item
		total int
	}{items, total}
}

func itemFixtures() (*mocks.ItemRepository, *mocks.CategoryRepository, *fakeItemSearchCache, service.ItemService) {
	itemRepo := new(mocks.ItemRepository)
	categoryRepo := new(mocks.CategoryRepository)
	searchCache := newFakeItemSearchCache()

	return itemRepo, categoryRepo, searchCache, service.NewItemService(itemRepo, categoryRepo, searchCache)
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	req := &models.CreateItemRequest{
		Name:               "Graph Paper Pad",
		UnitPrice:          dec("120.00"),
		StockAvailable:     50,
		Discount:           dec("10"),
		QtyToAllowDiscount: 20,
		CategoryID:         3,
	}

	t.Run("Success - Create Item", func(t *testing.T) {
		// Arrange
		itemRepo, categoryRepo, _, svc := itemFixtures()

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(3)).
			Return(&models.Category{ID: 3, Name: "Stationery"}, nil).Once()
		itemRepo.On("CreateItem", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
			return i.Name == req.Name && i.UnitPrice.Equal(dec("120.00")) && i.QtyToAllowDiscount == 20
		})).Return(nil).Once()

		// Act
		item, err := svc.CreateItem(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, req.Name, item.Name)
		itemRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("Failure - Discount Above One Hundred Percent", func(t *testing.T) {
		itemRepo, _, _, svc := itemFixtures()

		bad := *req
		bad.Discount = dec("150")

		item, err := svc.CreateItem(ctx, &bad)

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		itemRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		itemRepo, categoryRepo, _, svc := itemFixtures()

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(3)).
			Return(nil, errors.New("sql: no rows in result set")).Once()

		item, err := svc.CreateItem(ctx, req)

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		itemRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Search Items", func(t *testing.T) {
		itemRepo, _, _, svc := itemFixtures()

		expected := []*models.Item{{ID: 1, Name: "Graph Paper Pad"}}
		itemRepo.On("SearchItemsByName", mock.Anything, "paper", 1, 20).Return(expected, 1, nil).Once()

		items, total, err := svc.SearchItems(ctx, "paper", 1, 20)

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, expected, items)
	})

	t.Run("Success - Repeated Search Served From Cache", func(t *testing.T) {
		itemRepo, _, searchCache, svc := itemFixtures()

		expected := []*models.Item{{ID: 1, Name: "Graph Paper Pad"}}
		searchCache.SetSearch(ctx, "paper", 1, 20, expected, 1)

		items, total, err := svc.SearchItems(ctx, "paper", 1, 20)

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, expected, items)
		itemRepo.AssertNotCalled(t, "SearchItemsByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		itemRepo, _, _, svc := itemFixtures()

		itemRepo.On("SearchItemsByName", mock.Anything, "paper", 1, 20).
			Return(nil, 0, errors.New("connection reset")).Once()

		items, total, err := svc.SearchItems(ctx, "paper", 1, 20)

		assert.Nil(t, items)
		assert.Zero(t, total)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestListLowStockItems(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Low Stock Items", func(t *testing.T) {
		itemRepo, _, _, svc := itemFixtures()

		expected := []*models.Item{{ID: 2, Name: "Ballpoint Pen", StockAvailable: 4}}
		itemRepo.On("ListLowStockItems", mock.Anything, 10).Return(expected, nil).Once()

		items, err := svc.ListLowStockItems(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, expected, items)
	})

	t.Run("Failure - Negative Threshold", func(t *testing.T) {
		itemRepo, _, _, svc := itemFixtures()

		items, err := svc.ListLowStockItems(ctx, -1)

		assert.Nil(t, items)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		itemRepo.AssertNotCalled(t, "ListLowStockItems", mock.Anything, mock.Anything)
	})
}
