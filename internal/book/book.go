package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateISBN is returned when a create or update would leave
	// two records sharing an ISBN.
	ErrDuplicateISBN = errors.New("ISBN already exists")
	// ErrInvalidID is returned when an identifier is not a valid UUID.
	ErrInvalidID = errors.New("invalid book ID format")
	// ErrInvalidPrice is returned when an update sets a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")
)

// InvalidFieldsError reports update payload keys outside the allowed set.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("Invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Book represents a catalog record. JSON field names follow the wire
// format existing clients depend on.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	ISBN        string    `json:"ISBN"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Query defines filters and pagination for listing books. Absent fields
// impose no constraint.
type Query struct {
	Genre    string
	Author   string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}
