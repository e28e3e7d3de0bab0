package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
)

type CustomerHandler struct {
	customerService      service.CustomerService
	saleService          service.SaleService
	phoneLookupMinLength int
	validator            *validator.Validate
}

// NewCustomerHandler builds the customer surface. phoneLookupMinLength is the
// shortest telephone number the by-phone lookup accepts; values <= 0 fall back
// to 9 digits, matching the terminal's lookup threshold.
func NewCustomerHandler(customerService service.CustomerService, saleService service.SaleService, phoneLookupMinLength int) *CustomerHandler {

	if phoneLookupMinLength <= 0 {
		phoneLookupMinLength = 9
	}

	return &CustomerHandler{
		customerService:      customerService,
		saleService:          saleService,
		phoneLookupMinLength: phoneLookupMinLength,
		validator:            validator.New(),
	}
}

func (h *CustomerHandler) CreateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		customer, err := h.customerService.CreateCustomer(r.Context(), &req)
		if err != nil {
			logger.Error("Customer creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Customer created", slog.Int64("customerId", customer.ID))
		response.Success(w, http.StatusCreated, customer)
	}
}

func (h *CustomerHandler) GetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid customer id"))
			return
		}

		customer, err := h.customerService.GetCustomerByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// GetCustomerByTelephone backs the billing screen's resolver. The number
// arrives as the "number" query parameter; 404 tells the terminal the cashier
// is registering a new customer.
func (h *CustomerHandler) GetCustomerByTelephone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		telephone := strings.TrimSpace(r.URL.Query().Get("number"))
		if telephone == "" {
			response.Error(w, errors.BadRequestError("Telephone number is required"))
			return
		}

		if len(telephone) < h.phoneLookupMinLength {
			response.Error(w, errors.BadRequestError("Telephone number is too short"))
			return
		}

		customer, err := h.customerService.GetCustomerByTelephone(r.Context(), telephone)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

func (h *CustomerHandler) UpdateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid customer id"))
			return
		}

		var req models.UpdateCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		customer, err := h.customerService.UpdateCustomer(r.Context(), id, &req)
		if err != nil {
			logger.Error("Customer update failed", slog.Int64("customerId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Customer updated", slog.Int64("customerId", id))
		response.Success(w, http.StatusOK, customer)
	}
}

func (h *CustomerHandler) DeleteCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid customer id"))
			return
		}

		if err := h.customerService.DeactivateCustomer(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Customer deactivated", slog.Int64("customerId", id))
		response.Success(w, http.StatusOK, map[string]string{"status": "deactivated"})
	}
}

func (h *CustomerHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pagination(r)

		customers, total, err := h.customerService.ListCustomers(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(customers, total, page, pageSize))
	}
}

func (h *CustomerHandler) SearchCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		name := r.URL.Query().Get("name")
		if name == "" {
			response.Error(w, errors.BadRequestError("Search term is required"))
			return
		}

		page, pageSize := pagination(r)

		customers, total, err := h.customerService.SearchCustomers(r.Context(), name, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(customers, total, page, pageSize))
	}
}

func (h *CustomerHandler) ListCustomerSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid customer id"))
			return
		}

		page, pageSize := pagination(r)

		sales, total, err := h.saleService.ListSalesByCustomer(r.Context(), id, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(sales, total, page, pageSize))
	}
}
