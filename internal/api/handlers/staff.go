package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
)

type StaffHandler struct {
	staffService service.StaffService
	validator    *validator.Validate
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService, validator: validator.New()}
}

func (h *StaffHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.staffService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				logger.Warn("Login throttled", slog.String("username", req.Username), slog.Int("retryAfter", resp.RetryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message))
				return
			}

			// Rejected credentials stay a bare LoginResponse so the terminal
			// can show the remaining tries.
			logger.Warn("Login rejected", slog.String("username", req.Username))
			response.WriteJson(w, http.StatusUnauthorized, resp)
			return
		}

		logger.Info("Staff member logged in", slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *StaffHandler) CreateStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateStaffRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		staff, err := h.staffService.CreateStaff(r.Context(), &req)
		if err != nil {
			logger.Error("Staff creation failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Staff member created", slog.Int64("staffId", staff.ID))
		response.Success(w, http.StatusCreated, staff)
	}
}

func (h *StaffHandler) GetStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid staff id"))
			return
		}

		staff, err := h.staffService.GetStaffByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, staff)
	}
}

func (h *StaffHandler) UpdateStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid staff id"))
			return
		}

		var req models.UpdateStaffRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		staff, err := h.staffService.UpdateStaff(r.Context(), id, &req)
		if err != nil {
			logger.Error("Staff update failed", slog.Int64("staffId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Staff member updated", slog.Int64("staffId", id))
		response.Success(w, http.StatusOK, staff)
	}
}

func (h *StaffHandler) DeleteStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid staff id"))
			return
		}

		if err := h.staffService.DeleteStaff(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Staff member deleted", slog.Int64("staffId", id))
		response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *StaffHandler) ListStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pagination(r)

		staffMembers, total, err := h.staffService.ListStaff(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(staffMembers, total, page, pageSize))
	}
}
