package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/products?page=1&per_page=12
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 12)

	products, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		h.log.Error("Failed to list products", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", map[string]any{
		"products": products,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// Get handles GET /api/products/{idOrSlug}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	// UUID first, fall back to slug lookup for storefront URLs
	if id, err := utils.ParseUUID(param); err == nil {
		product, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.handleProductError(w, err)
			return
		}
		utils.ResponseSuccess(w, "Product retrieved", product)
		return
	}

	product, err := h.service.GetBySlug(r.Context(), param)
	if err != nil {
		h.handleProductError(w, err)
		return
	}
	utils.ResponseSuccess(w, "Product retrieved", product)
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "already taken") || isValidationError(err) {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		h.log.Error("Failed to create product", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// Update handles PUT /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	var req request.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleProductError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.ResponseNotFound(w, "Product not found")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

func (h *ProductHandler) handleProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, "Product not found")
	case isValidationError(err):
		utils.ResponseBadRequest(w, err.Error(), nil)
	default:
		h.log.Error("Product operation failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
