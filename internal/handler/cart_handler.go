package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles shopping-cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Create handles POST /v1/carts/.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	view, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetByID handles GET /v1/carts/{id}/.
func (h *CartHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeID(w, r, "id", "invalid cart id")
	if !ok {
		return
	}

	view, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /v1/carts/{id}/.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeID(w, r, "id", "invalid cart id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /v1/carts/{id}/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.routeID(w, r, "id", "invalid cart id")
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	item, err := h.service.AddItem(r.Context(), cartID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// RemoveItem handles DELETE /v1/carts/{id}/items/{itemID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.routeID(w, r, "id", "invalid cart id")
	if !ok {
		return
	}

	itemID, ok := h.routeID(w, r, "itemID", "invalid item id")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), cartID, itemID); err != nil {
		respondError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// routeID parses a numeric route parameter, writing a 400 on failure.
func (h *CartHandler) routeID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, message, h.logger)
		return 0, false
	}
	return id, true
}
