package book

import (
	"context"
)

// Repository defines the contract for catalog storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	List(ctx context.Context, q Query) ([]Book, int, error)
	GetByID(ctx context.Context, id string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Update(ctx context.Context, id string, fields map[string]any) (Book, error)
	Delete(ctx context.Context, id string) error
	CountByIDs(ctx context.Context, ids []string) (int, error)
}
