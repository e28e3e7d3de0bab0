package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Category creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid category id"))
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// UpdateCategory takes the id in the body, matching how the management screen
// submits the whole category record.
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Category update failed", slog.Int64("categoryId", req.CategoryID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid category id"))
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pagination(r)

		categories, total, err := h.categoryService.ListCategories(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(categories, total, page, pageSize))
	}
}
