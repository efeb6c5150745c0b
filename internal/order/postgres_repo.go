package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, o *Order) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	const query = `
	INSERT INTO orders (customer_name, customer_email, customer_mobile, customer_address, total_price, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(timeoutCtx, query,
		o.CustomerName, o.CustomerEmail, o.CustomerMobile, o.CustomerAddress, o.TotalPrice, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertBookRefs(timeoutCtx, tx, o.ID, o.Books); err != nil {
		return err
	}

	return tx.Commit(timeoutCtx)
}

func insertBookRefs(ctx context.Context, tx pgx.Tx, orderID string, refs []BookRef) error {
	for i, ref := range refs {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_books (order_id, position, book_id) VALUES ($1, $2, $3)`,
			orderID, i, ref.BookID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Order, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.CustomerName != "" {
		clauses = append(clauses, fmt.Sprintf("customer_name ILIKE $%d", argn))
		args = append(args, "%"+q.CustomerName+"%")
		argn++
	}

	if q.CustomerEmail != "" {
		clauses = append(clauses, fmt.Sprintf("customer_email ILIKE $%d", argn))
		args = append(args, "%"+q.CustomerEmail+"%")
		argn++
	}

	if q.Day != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d AND created_at < $%d", argn, argn+1))
		args = append(args, *q.Day, q.Day.Add(24*time.Hour))
		argn += 2
	}

	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argn))
		args = append(args, q.Status)
		argn++
	}

	query := fmt.Sprintf(`
	SELECT id, customer_name, customer_email, customer_mobile, customer_address, total_price, status, created_at, updated_at
	FROM orders
	WHERE %s
	ORDER BY created_at DESC`, strings.Join(clauses, " AND "))

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerMobile, &o.CustomerAddress,
			&o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.Books = []BookRef{}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.populateBooks(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// populateBooks attaches book references, with catalog details where the
// reference still resolves, to the given orders.
func (r *PostgresRepo) populateBooks(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[string]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids = append(ids, o.ID)
	}

	const query = `
	SELECT ob.order_id, ob.book_id,
	       b.id, b.title, b.author, b.genre, b.isbn, b.price
	FROM order_books ob
	LEFT JOIN books b ON b.id = ob.book_id
	WHERE ob.order_id = ANY($1::uuid[])
	ORDER BY ob.order_id, ob.position
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, bookID string
		var id, title, author, genre, isbn *string
		var price *float64
		if err := rows.Scan(&orderID, &bookID, &id, &title, &author, &genre, &isbn, &price); err != nil {
			return err
		}

		ref := BookRef{BookID: bookID}
		if id != nil {
			ref.Book = &book.Book{
				ID:     *id,
				Title:  *title,
				Author: *author,
				Genre:  *genre,
				ISBN:   *isbn,
				Price:  *price,
			}
		}
		i := index[orderID]
		orders[i].Books = append(orders[i].Books, ref)
	}
	return rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Order, error) {
	const query = `
	SELECT id, customer_name, customer_email, customer_mobile, customer_address, total_price, status, created_at, updated_at
	FROM orders
	WHERE id = $1
	LIMIT 1
	`
	var o Order
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerMobile, &o.CustomerAddress,
		&o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	o.Books = []BookRef{}
	orders := []Order{o}
	if err := r.populateBooks(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepo) Update(ctx context.Context, o *Order) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	// Total price keeps its placement-time value.
	const query = `
	UPDATE orders
	SET status = $1, updated_at = now()
	WHERE id = $2
	RETURNING updated_at
	`
	err = tx.QueryRow(timeoutCtx, query, o.Status, o.ID).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM order_books WHERE order_id = $1`, o.ID); err != nil {
		return err
	}
	if err := insertBookRefs(timeoutCtx, tx, o.ID, o.Books); err != nil {
		return err
	}

	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
