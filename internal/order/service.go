package order

import (
	"context"
	"errors"
	"regexp"

	"bookstore/internal/book"

	"github.com/google/uuid"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// Service assembles and manages orders against the catalog.
type Service struct {
	repo    Repository
	catalog Catalog
}

// NewService creates a new order service.
func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// PlaceInput is the payload for placing an order.
type PlaceInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerMobile  string
	CustomerAddress string
	Books           []string
}

// Place validates the payload, resolves every book reference and
// persists the order. Checks run in order and stop at the first failure:
// required fields, email shape, mobile shape, then book resolution one
// identifier at a time.
func (s *Service) Place(ctx context.Context, in PlaceInput) (Order, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" || in.CustomerMobile == "" ||
		in.CustomerAddress == "" || len(in.Books) == 0 {
		return Order{}, ErrMissingFields
	}
	if !emailRe.MatchString(in.CustomerEmail) {
		return Order{}, ErrInvalidEmail
	}
	if !mobileRe.MatchString(in.CustomerMobile) {
		return Order{}, ErrInvalidMobile
	}

	var totalPrice float64
	refs := make([]BookRef, 0, len(in.Books))
	for _, id := range in.Books {
		if _, err := uuid.Parse(id); err != nil {
			return Order{}, ErrInvalidBookID
		}
		b, err := s.catalog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, book.ErrNotFound) {
				return Order{}, &BookNotFoundError{ID: id}
			}
			return Order{}, err
		}
		totalPrice += b.Price
		refs = append(refs, BookRef{BookID: id})
	}

	o := Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerMobile:  in.CustomerMobile,
		CustomerAddress: in.CustomerAddress,
		Books:           refs,
		TotalPrice:      totalPrice,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// List returns orders matching the query with book details populated.
func (s *Service) List(ctx context.Context, q Query) ([]Order, error) {
	return s.repo.List(ctx, q)
}

// UpdateInput carries the mutable order fields. Nil means "not provided";
// an explicitly empty Books list replaces the references with none.
type UpdateInput struct {
	Status *string
	Books  *[]string
}

// Update applies status and/or book list changes. A non-empty
// replacement list must resolve entirely against the catalog. TotalPrice
// keeps its placement-time value even when the book list changes.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrInvalidID
	}
	if in.Status == nil && in.Books == nil {
		return Order{}, ErrNoUpdateFields
	}
	if in.Status != nil && !ValidStatus(*in.Status) {
		return Order{}, ErrInvalidStatus
	}

	if in.Books != nil && len(*in.Books) > 0 {
		for _, bookID := range *in.Books {
			if _, err := uuid.Parse(bookID); err != nil {
				return Order{}, ErrInvalidBookID
			}
		}
		found, err := s.catalog.CountByIDs(ctx, *in.Books)
		if err != nil {
			return Order{}, err
		}
		if found != len(*in.Books) {
			return Order{}, ErrBooksUnavailable
		}
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.Books != nil {
		refs := make([]BookRef, 0, len(*in.Books))
		for _, bookID := range *in.Books {
			refs = append(refs, BookRef{BookID: bookID})
		}
		o.Books = refs
	}

	if err := s.repo.Update(ctx, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Delete permanently removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
