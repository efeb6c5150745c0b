package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type CreateOrderReq struct {
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail"`
	CustomerMobile  string   `json:"customerMobile"`
	CustomerAddress string   `json:"customerAddress"`
	Books           []string `json:"books"`
}

// Create handles POST /api/orders/create-order
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	o, err := h.service.Place(r.Context(), PlaceInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerMobile:  req.CustomerMobile,
		CustomerAddress: req.CustomerAddress,
		Books:           req.Books,
	})
	if err != nil {
		var bookNotFound *BookNotFoundError
		switch {
		case errors.Is(err, ErrMissingFields):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "All customer details and at least one book are required", nil)
		case errors.Is(err, ErrInvalidEmail):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email format", nil)
		case errors.Is(err, ErrInvalidMobile):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid mobile number format", nil)
		case errors.Is(err, ErrInvalidBookID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid book ID format", nil)
		case errors.As(err, &bookNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", bookNotFound.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, o)
}

// List handles GET /api/orders/get-orders
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		CustomerName:  query.Get("customerName"),
		CustomerEmail: query.Get("customerEmail"),
		Status:        query.Get("status"),
	}

	if dateStr := query.Get("orderDate"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "orderDate must be formatted YYYY-MM-DD", nil)
			return
		}
		params.Day = &day
	}

	orders, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		return
	}
	if orders == nil {
		orders = []Order{}
	}

	httpx.JSONSuccess(w, r, orders, nil)
}

type UpdateOrderReq struct {
	Status *string   `json:"status"`
	Books  *[]string `json:"books"`
}

// Update handles PUT /api/orders/update-order/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	o, err := h.service.Update(r.Context(), id, UpdateInput{Status: req.Status, Books: req.Books})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid order ID format", nil)
		case errors.Is(err, ErrNoUpdateFields):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "At least one field (status or books) is required to update", nil)
		case errors.Is(err, ErrInvalidStatus):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be one of Pending, Processing, Completed, Cancelled", nil)
		case errors.Is(err, ErrInvalidBookID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid book ID format", nil)
		case errors.Is(err, ErrBooksUnavailable):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "One or more books are not available in the inventory", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, o, nil)
}

// Delete handles DELETE /api/orders/delete-order/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid order ID format", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, map[string]string{"message": "Order deleted successfully"}, nil)
}
