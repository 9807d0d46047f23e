package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cartshop/cartshop/internal/auth"
	"github.com/cartshop/cartshop/internal/handler/dto"
	"github.com/cartshop/cartshop/internal/service"
)

// CartHandler handles HTTP requests for cart operations.
// All routes run behind the session middleware; the user comes from
// the request identity, never from the body.
type CartHandler struct {
	svc    *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		svc:    svc,
		logger: logger,
	}
}

// Add handles POST /api/cart/add/{productId}.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	productID, ok := cartProductID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Failed to add item to the cart")
		return
	}

	item, err := h.svc.AddItem(r.Context(), identity.UserID, productID)
	if err != nil {
		if errors.Is(err, service.ErrCartReference) {
			writeMessage(w, http.StatusBadRequest, "Failed to add item to the cart")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("cart_item_added",
		"user_id", identity.UserID,
		"product_id", productID,
		"cart_item_id", item.ID,
	)

	writeMessage(w, http.StatusOK, "Item added to the cart")
}

// Remove handles DELETE /api/cart/remove/{productId}.
// Removes exactly one row for the (user, product) pair.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	productID, ok := cartProductID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Failed to remove item from the cart")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), identity.UserID, productID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			writeMessage(w, http.StatusBadRequest, "Failed to remove item from the cart")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("cart_item_removed",
		"user_id", identity.UserID,
		"product_id", productID,
	)

	writeMessage(w, http.StatusOK, "Item removed from the cart")
}

// List handles GET /api/cart.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	entries, err := h.svc.ListItems(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCartResponse(entries))
}

// cartProductID parses the {productId} path parameter.
func cartProductID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
