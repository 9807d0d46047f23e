package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cartshop/cartshop/internal/handler/dto"
	"github.com/cartshop/cartshop/internal/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	svc      *service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:      svc,
		validate: validator.New(),
		logger:   logger,
	}
}

// Add handles POST /api/products/add.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_created",
		"product_id", product.ID,
		"name", product.Name,
	)

	writeMessage(w, http.StatusOK, "Product added successfully")
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// List handles GET /api/products.
// Returns summary projections without descriptions.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// Update handles PUT /api/products/update/{id}.
// Only fields present in the body are overwritten.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), service.UpdateProductInput{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_updated", "product_id", product.ID)

	writeMessage(w, http.StatusOK, "Product updated successfully")
}

// Delete handles DELETE /api/products/delete/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_deleted", "product_id", id)

	writeMessage(w, http.StatusOK, "Product deleted successfully")
}

// productID parses the {id} path parameter.
// A non-numeric id cannot name an existing product, so it reports not-ok
// and callers answer 404.
func productID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleServiceError maps catalog service errors to HTTP responses.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, "Name and price are required")
	case errors.Is(err, service.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
