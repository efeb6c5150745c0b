package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/book"
)

// Order statuses.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var (
	// ErrNotFound is returned when an order is not found.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidID is returned when an order identifier is not a valid UUID.
	ErrInvalidID = errors.New("invalid order ID format")
	// ErrInvalidBookID is returned when a referenced book identifier is
	// not a valid UUID.
	ErrInvalidBookID = errors.New("invalid book ID format")
	// ErrMissingFields is returned when a placement payload lacks a
	// required customer field or contains no books.
	ErrMissingFields = errors.New("all customer details and at least one book are required")
	// ErrInvalidEmail is returned when the customer email does not match
	// the <local>@<domain>.<tld> shape.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidMobile is returned when the customer mobile is not
	// exactly 10 digits.
	ErrInvalidMobile = errors.New("invalid mobile number format")
	// ErrNoUpdateFields is returned when an update provides neither
	// status nor books.
	ErrNoUpdateFields = errors.New("at least one field (status or books) is required to update")
	// ErrInvalidStatus is returned when an update carries an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrBooksUnavailable is returned when an update references books
	// missing from the catalog.
	ErrBooksUnavailable = errors.New("one or more books are not available in the inventory")
)

// BookNotFoundError names the first unresolvable book reference during
// order placement.
type BookNotFoundError struct {
	ID string
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("Book with ID %s not found", e.ID)
}

// BookRef is a weak reference to a catalog record. Book carries the
// populated details on reads and is nil when the reference dangles.
type BookRef struct {
	BookID string     `json:"bookId"`
	Book   *book.Book `json:"book,omitempty"`
}

// Order represents a customer order. TotalPrice is derived from the
// referenced books' prices at placement time and is never recomputed.
type Order struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerMobile  string    `json:"customerMobile"`
	CustomerAddress string    `json:"customerAddress"`
	Books           []BookRef `json:"books"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"orderDate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Query defines optional filters for listing orders. Absent fields
// impose no constraint.
type Query struct {
	CustomerName  string
	CustomerEmail string
	Status        string
	Day           *time.Time // matches orders placed within [Day, Day+24h)
}
