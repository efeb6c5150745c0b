package book

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// allowedUpdateFields is the full set of mutable catalog fields. Any
// other key in an update payload is rejected by name.
var allowedUpdateFields = map[string]bool{
	"title":  true,
	"author": true,
	"genre":  true,
	"ISBN":   true,
	"price":  true,
}

// Service provides catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a book to the catalog. The ISBN must not already be in use.
func (s *Service) Create(ctx context.Context, b *Book) error {
	_, err := s.repo.GetByISBN(ctx, b.ISBN)
	if err == nil {
		return ErrDuplicateISBN
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	// The unique index still backstops the check above if two creates race.
	return s.repo.Create(ctx, b)
}

// List returns books matching the query plus the total match count.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

// GetByID returns a single book.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Book{}, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. Keys outside the allowed set are
// rejected, and an ISBN change may not collide with a different record.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Book{}, ErrInvalidID
	}

	var invalid []string
	for key := range fields {
		if !allowedUpdateFields[key] {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Book{}, &InvalidFieldsError{Fields: invalid}
	}

	if price, ok := fields["price"]; ok {
		p, ok := price.(float64)
		if !ok || p < 0 {
			return Book{}, ErrInvalidPrice
		}
	}

	if isbn, ok := fields["ISBN"].(string); ok {
		existing, err := s.repo.GetByISBN(ctx, isbn)
		if err == nil && existing.ID != id {
			return Book{}, ErrDuplicateISBN
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Book{}, err
		}
	}

	return s.repo.Update(ctx, id, fields)
}

// CountByIDs reports how many of the given identifiers resolve to
// catalog records. Duplicate identifiers are counted once.
func (s *Service) CountByIDs(ctx context.Context, ids []string) (int, error) {
	return s.repo.CountByIDs(ctx, ids)
}

// Delete permanently removes a book. Orders referencing it keep their
// now-dangling references.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
