package order

import (
	"context"

	"bookstore/internal/book"
)

// Repository defines the contract for order storage.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context, q Query) ([]Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}

// Catalog is the read side of the book catalog the assembler resolves
// references against.
type Catalog interface {
	GetByID(ctx context.Context, id string) (book.Book, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
}
