package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pahanaedu/pos-platform/internal/api/handlers"
	appErrors "github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/services/mocks"
	"github.com/pahanaedu/pos-platform/internal/testutils"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSaleTest() (*mocks.SaleService, *handlers.SaleHandler) {
	mockSaleService := new(mocks.SaleService)
	saleHandler := handlers.NewSaleHandler(mockSaleService)

	return mockSaleService, saleHandler
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(models.CreateSaleRequest{
		Customer: models.CustomerInput{
			Name:      "Nimal Perera",
			Telephone: "0771234567",
			Address:   "12 Temple Road, Kandy",
		},
		SaleItems: []models.SaleItemInput{
			{ItemID: 1, Qty: 20},
			{ItemID: 2, Qty: 1},
		},
		Paid: decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	return body
}

func TestCreateSaleHandler(t *testing.T) {

	t.Run("Success - Sale Recorded", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/sales", bytes.NewReader(checkoutBody(t)), "sunil", models.RoleCashier, nil)
		recorder := httptest.NewRecorder()

		committed := &models.Sale{
			ID:          7,
			CustomerID:  42,
			TotalAmount: decimal.RequireFromString("2210.00"),
			Balance:     decimal.RequireFromString("210.00"),
		}
		mockSaleService.On("CreateSale", mock.Anything, mock.AnythingOfType("*models.CreateSaleRequest")).Return(committed, nil).Once()

		// Act
		saleHandler.CreateSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)

		mockSaleService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart Rejected Before The Service", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		body, err := json.Marshal(models.CreateSaleRequest{
			Customer: models.CustomerInput{Name: "Nimal Perera", Telephone: "0771234567"},
		})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/sales", bytes.NewReader(body), "sunil", models.RoleCashier, nil)
		recorder := httptest.NewRecorder()

		// Act
		saleHandler.CreateSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockSaleService.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Stock Conflict Maps To 409", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/sales", bytes.NewReader(checkoutBody(t)), "sunil", models.RoleCashier, nil)
		recorder := httptest.NewRecorder()

		conflict := appErrors.NewAppError(appErrors.ErrCodeInsufficientStock, "Stock changed while the sale was in progress", http.StatusConflict)
		mockSaleService.On("CreateSale", mock.Anything, mock.AnythingOfType("*models.CreateSaleRequest")).Return(nil, conflict).Once()

		// Act
		saleHandler.CreateSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, resp.Error.Code)

		mockSaleService.AssertExpectations(t)
	})
}

func TestGetSaleHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/sales/7", nil, "sunil", models.RoleCashier, map[string]string{"id": "7"})
		recorder := httptest.NewRecorder()

		mockSaleService.On("GetSaleByID", mock.Anything, int64(7)).Return(&models.Sale{ID: 7, CustomerID: 42}, nil).Once()

		// Act
		saleHandler.GetSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockSaleService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/sales/seven", nil, "sunil", models.RoleCashier, map[string]string{"id": "seven"})
		recorder := httptest.NewRecorder()

		// Act
		saleHandler.GetSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockSaleService.AssertNotCalled(t, "GetSaleByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Sale", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/sales/404", nil, "sunil", models.RoleCashier, map[string]string{"id": "404"})
		recorder := httptest.NewRecorder()

		mockSaleService.On("GetSaleByID", mock.Anything, int64(404)).Return(nil, appErrors.NotFoundError("Sale not found")).Once()

		// Act
		saleHandler.GetSale()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockSaleService.AssertExpectations(t)
	})
}

func TestUpdateSalePaymentHandler(t *testing.T) {

	t.Run("Success - Balance Settled", func(t *testing.T) {
		// Arrange
		mockSaleService, saleHandler := setupSaleTest()
		body, err := json.Marshal(models.UpdateSalePaymentRequest{Paid: decimal.RequireFromString("2210.00")})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/sales/7/payment", bytes.NewReader(body), "sunil", models.RoleCashier, map[string]string{"id": "7"})
		recorder := httptest.NewRecorder()

		settled := &models.Sale{ID: 7, Paid: decimal.RequireFromString("2210.00"), Balance: decimal.Zero}
		mockSaleService.On("UpdateSalePayment", mock.Anything, int64(7), mock.AnythingOfType("*models.UpdateSalePaymentRequest")).Return(settled, nil).Once()

		// Act
		saleHandler.UpdateSalePayment()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockSaleService.AssertExpectations(t)
	})
}
