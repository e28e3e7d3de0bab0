package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewItemRepo(db)
	ctx := t.Context()

	itemCols := []string{"item_id", "name", "unit_price", "stock_available", "discount", "qty_to_allow_discount", "category_id", "last_updated_at"}

	t.Run("CreateItem", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO items (name, unit_price, stock_available, discount, qty_to_allow_discount, category_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING item_id, last_updated_at`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			item := &models.Item{
				Name:               "Graph Paper Pad",
				UnitPrice:          decimal.RequireFromString("120.00"),
				StockAvailable:     50,
				Discount:           decimal.RequireFromString("10"),
				QtyToAllowDiscount: 20,
				CategoryID:         3,
			}
			now := time.Now()

			mock.ExpectQuery(expectedSQL).
				WithArgs(item.Name, item.UnitPrice, item.StockAvailable, item.Discount, item.QtyToAllowDiscount, item.CategoryID).
				WillReturnRows(sqlmock.NewRows([]string{"item_id", "last_updated_at"}).AddRow(int64(1), now))

			// Act
			err := repo.CreateItem(ctx, item)

			// Assert
			require.NoError(t, err, "CreateItem should not return an error on success")
			assert.Equal(t, int64(1), item.ID, "Item ID should be updated")
			assert.WithinDuration(t, now, item.LastUpdatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			item := &models.Item{Name: "Error Item", UnitPrice: decimal.NewFromInt(10)}
			dbError := errors.New("database insertion error")

			mock.ExpectQuery(expectedSQL).
				WithArgs(item.Name, item.UnitPrice, item.StockAvailable, item.Discount, item.QtyToAllowDiscount, item.CategoryID).
				WillReturnError(dbError)

			// Act
			err := repo.CreateItem(ctx, item)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetItemByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at FROM items WHERE item_id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			now := time.Now()

			rows := sqlmock.NewRows(itemCols).
				AddRow(int64(1), "Graph Paper Pad", "120.00", 50, "10", 20, int64(3), now)

			mock.ExpectQuery(expectedSQL).WithArgs(int64(1)).WillReturnRows(rows)

			// Act
			item, err := repo.GetItemByID(ctx, 1)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, item)
			assert.Equal(t, "Graph Paper Pad", item.Name)
			assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("120.00")))
			assert.Equal(t, 20, item.QtyToAllowDiscount)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

			// Act
			item, err := repo.GetItemByID(ctx, 404)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, item)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("DeleteItem", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`DELETE FROM items WHERE item_id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.DeleteItem(ctx, 1)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).WithArgs(int64(404)).WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.DeleteItem(ctx, 404)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("SearchItemsByName", func(t *testing.T) {
		page, size := 1, 10
		offset := (page - 1) * size

		expectedCountSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM items WHERE LOWER(name) LIKE LOWER($1)`)
		expectedListSQL := regexp.QuoteMeta(`SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at FROM items WHERE LOWER(name) LIKE LOWER($1) ORDER BY name LIMIT $2 OFFSET $3`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			now := time.Now()

			mock.ExpectQuery(expectedCountSQL).WithArgs("%paper%").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			rows := sqlmock.NewRows(itemCols).
				AddRow(int64(1), "Graph Paper Pad", "120.00", 50, "10", 20, int64(3), now)
			mock.ExpectQuery(expectedListSQL).WithArgs("%paper%", size, offset).WillReturnRows(rows)

			// Act
			items, total, err := repo.SearchItemsByName(ctx, "paper", page, size)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, items, 1)
			assert.Equal(t, "Graph Paper Pad", items[0].Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NoMatches", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedCountSQL).WithArgs("%stapler%").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectQuery(expectedListSQL).WithArgs("%stapler%", size, offset).WillReturnRows(sqlmock.NewRows(itemCols))

			// Act
			items, total, err := repo.SearchItemsByName(ctx, "stapler", page, size)

			// Assert
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, items)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListLowStockItems", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at FROM items WHERE stock_available <= $1 ORDER BY stock_available`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			now := time.Now()

			rows := sqlmock.NewRows(itemCols).
				AddRow(int64(2), "Ballpoint Pen", "50.00", 3, "5", 12, int64(3), now)
			mock.ExpectQuery(expectedSQL).WithArgs(10).WillReturnRows(rows)

			// Act
			items, err := repo.ListLowStockItems(ctx, 10)

			// Assert
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 3, items[0].StockAvailable)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("QueryError", func(t *testing.T) {
			// Arrange
			dbError := errors.New("query failed")
			mock.ExpectQuery(expectedSQL).WithArgs(10).WillReturnError(dbError)

			// Act
			items, err := repo.ListLowStockItems(ctx, 10)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Nil(t, items)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
