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

const defaultLowStockThreshold = 10

type ItemHandler struct {
	itemService service.ItemService
	validator   *validator.Validate
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService, validator: validator.New()}
}

func (h *ItemHandler) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.itemService.CreateItem(r.Context(), &req)
		if err != nil {
			logger.Error("Item creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item created", slog.Int64("itemId", item.ID))
		response.Success(w, http.StatusCreated, item)
	}
}

func (h *ItemHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid item id"))
			return
		}

		item, err := h.itemService.GetItemByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

func (h *ItemHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid item id"))
			return
		}

		var req models.UpdateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.itemService.UpdateItem(r.Context(), id, &req)
		if err != nil {
			logger.Error("Item update failed", slog.Int64("itemId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item updated", slog.Int64("itemId", id))
		response.Success(w, http.StatusOK, item)
	}
}

func (h *ItemHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid item id"))
			return
		}

		if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Item deleted", slog.Int64("itemId", id))
		response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *ItemHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pagination(r)

		items, total, err := h.itemService.ListItems(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(items, total, page, pageSize))
	}
}

// SearchItems serves the billing screen's picker: GET /api/items/search?name=pen
func (h *ItemHandler) SearchItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		name := r.URL.Query().Get("name")
		if name == "" {
			response.Error(w, errors.BadRequestError("Search term is required"))
			return
		}

		page, pageSize := pagination(r)

		items, total, err := h.itemService.SearchItems(r.Context(), name, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(items, total, page, pageSize))
	}
}

func (h *ItemHandler) ListItemsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(r)
		if !ok {
			response.Error(w, errors.BadRequestError("Invalid category id"))
			return
		}

		page, pageSize := pagination(r)

		items, total, err := h.itemService.ListItemsByCategory(r.Context(), id, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, paginated(items, total, page, pageSize))
	}
}

func (h *ItemHandler) ListLowStockItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		threshold := defaultLowStockThreshold
		if raw := r.URL.Query().Get("threshold"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid threshold"))
				return
			}
			threshold = parsed
		}

		items, err := h.itemService.ListLowStockItems(r.Context(), threshold)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}
