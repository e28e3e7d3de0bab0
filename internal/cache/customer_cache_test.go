package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pahanaedu/pos-platform/internal/cache"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.CustomerCache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return cache.NewCustomerCache(client), mock
}

func cachedCustomer() *models.Customer {
	return &models.Customer{
		ID:        42,
		Name:      "Nimal Perera",
		Telephone: "0771234567",
		Address:   "12 Temple Road, Kandy",
		IsActive:  true,
	}
}

func TestGetByTelephone(t *testing.T) {
	ctx := t.Context()
	key := "customer:telephone:0771234567"

	t.Run("Success - Cached Customer Returned", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)
		payload, err := json.Marshal(cachedCustomer())
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(payload))

		// Act
		customer, found := customerCache.GetByTelephone(ctx, "0771234567")

		// Assert
		assert.True(t, found)
		require.NotNil(t, customer)
		assert.Equal(t, int64(42), customer.ID)
		assert.Equal(t, "Nimal Perera", customer.Name)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Miss - Key Absent", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)

		mock.ExpectGet(key).SetErr(redis.Nil)

		// Act
		customer, found := customerCache.GetByTelephone(ctx, "0771234567")

		// Assert
		assert.False(t, found)
		assert.Nil(t, customer)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Miss - Redis Error Falls Through", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)

		mock.ExpectGet(key).SetErr(errors.New("redis connection error"))

		// Act
		customer, found := customerCache.GetByTelephone(ctx, "0771234567")

		// Assert
		assert.False(t, found, "a Redis failure must read as a miss, never an error")
		assert.Nil(t, customer)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Miss - Corrupt Entry Is Dropped", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)

		mock.ExpectGet(key).SetVal("{not json")
		mock.ExpectDel(key).SetVal(1)

		// Act
		customer, found := customerCache.GetByTelephone(ctx, "0771234567")

		// Assert
		assert.False(t, found)
		assert.Nil(t, customer)
		assert.NoError(t, mock.ExpectationsWereMet(), "corrupt entry should be deleted")
	})
}

func TestSetByTelephone(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)
		customer := cachedCustomer()
		payload, err := json.Marshal(customer)
		require.NoError(t, err)

		mock.ExpectSet("customer:telephone:0771234567", payload, 5*time.Minute).SetVal("OK")

		// Act
		customerCache.SetByTelephone(ctx, customer)

		// Assert
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Redis Error Is Swallowed", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)
		customer := cachedCustomer()
		payload, err := json.Marshal(customer)
		require.NoError(t, err)

		mock.ExpectSet("customer:telephone:0771234567", payload, 5*time.Minute).SetErr(errors.New("redis SET failed"))

		// Act
		customerCache.SetByTelephone(ctx, customer)

		// Assert
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestInvalidate(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		customerCache, mock := setup(t)

		mock.ExpectDel("customer:telephone:0771234567").SetVal(1)

		// Act
		customerCache.Invalidate(ctx, "0771234567")

		// Assert
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}
