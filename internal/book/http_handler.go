package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type CreateBookReq struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Genre       string   `json:"genre" validate:"required"`
	ISBN        string   `json:"ISBN" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description"`
}

// Create handles POST /api/books/create-book
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required", details)
		return
	}

	b := Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := h.service.Create(r.Context(), &b); err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			httpx.JSONError(w, r, http.StatusBadRequest, "CONFLICT", "ISBN already exists", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, b)
}

// List handles GET /api/books/get-books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		Genre:  query.Get("genre"),
		Author: query.Get("author"),
		Search: query.Get("search"),
	}

	// Non-numeric price bounds impose no constraint.
	if minPriceStr := query.Get("minPrice"); minPriceStr != "" {
		if val, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			params.MinPrice = &val
		}
	}
	if maxPriceStr := query.Get("maxPrice"); maxPriceStr != "" {
		if val, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			params.MaxPrice = &val
		}
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	params.Page = page
	params.Limit = limit

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"currentPage": page,
		"totalPages":  (total + limit - 1) / limit,
		"totalBooks":  total,
	})
}

// Update handles PUT /api/books/update-book/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	b, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		var invalidFields *InvalidFieldsError
		switch {
		case errors.As(err, &invalidFields):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_FIELDS", invalidFields.Error(), nil)
		case errors.Is(err, ErrInvalidID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid book ID format", nil)
		case errors.Is(err, ErrInvalidPrice):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Price must not be negative", nil)
		case errors.Is(err, ErrDuplicateISBN):
			httpx.JSONError(w, r, http.StatusBadRequest, "CONFLICT", "ISBN already exists", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /api/books/delete-book/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid book ID format", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, map[string]string{"message": "Book deleted successfully"}, nil)
}
