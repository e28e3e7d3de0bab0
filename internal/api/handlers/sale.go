package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/metrics"
	"github.com/pahanaedu/pos-platform/internal/models"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
)

type SaleHandler struct {
	saleService service.SaleService
	validator   *validator.Validate
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService, validator: validator.New()}
}

func (h *SaleHandler) CreateSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateSaleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sale, err := h.saleService.CreateSale(r.Context(), &req)
		if err != nil {
			logger.Error("Sale submission failed", slog.String("telephone", req.Customer.Telephone), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		metrics.RecordSale(sale.TotalAmount)
		logger.Info("Sale recorded",
			slog.Int64("saleId", sale.ID),
			slog.Int64("customerId", sale.CustomerID),
			slog.String("total", sale.TotalAmount.String()),
		)
		response.Success(w, http.StatusCreated, sale)
	}
}

func (h *SaleHandler) GetSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid sale id"))
			return
		}

		sale, err := h.saleService.GetSaleByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sale)
	}
}

func (h *SaleHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pagination(r)

		sales, total, err := h.saleService.ListSales(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(sales, total, page, pageSize))
	}
}

// UpdateSalePayment settles an outstanding balance after the fact.
func (h *SaleHandler) UpdateSalePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid sale id"))
			return
		}

		var req models.UpdateSalePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sale, err := h.saleService.UpdateSalePayment(r.Context(), id, &req)
		if err != nil {
			logger.Error("Payment update failed", slog.Int64("saleId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Payment updated", slog.Int64("saleId", id), slog.String("balance", sale.Balance.String()))
		response.Success(w, http.StatusOK, sale)
	}
}
