package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

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

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (title, author, genre, isbn, description, price)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Genre, b.ISBN, b.Description, b.Price).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genre = $%d", argn))
		args = append(args, q.Genre)
		argn++
	}

	if q.Author != "" {
		clauses = append(clauses, fmt.Sprintf("author = $%d", argn))
		args = append(args, q.Author)
		argn++
	}

	if q.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", argn))
		args = append(args, *q.MinPrice)
		argn++
	}

	if q.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", argn))
		args = append(args, *q.MaxPrice)
		argn++
	}

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argn, argn+1))
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
		argn += 2
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := "SELECT COUNT(*) FROM books " + where
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
	SELECT id, title, author, genre, isbn, description, price, created_at, updated_at
	FROM books
	%s
	ORDER BY title ASC
	LIMIT $%d OFFSET $%d`, where, argn, argn+1)

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ISBN, &b.Description, &b.Price, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `
	SELECT id, title, author, genre, isbn, description, price, created_at, updated_at
	FROM books
	WHERE id = $1
	LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ISBN, &b.Description, &b.Price, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `
	SELECT id, title, author, genre, isbn, description, price, created_at, updated_at
	FROM books
	WHERE isbn = $1
	LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, isbn).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ISBN, &b.Description, &b.Price, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// columnByField maps payload keys (already validated by the service) to
// column names.
var columnByField = map[string]string{
	"title":  "title",
	"author": "author",
	"genre":  "genre",
	"ISBN":   "isbn",
	"price":  "price",
}

func (r *PostgresRepo) Update(ctx context.Context, id string, fields map[string]any) (Book, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	argn := 1

	for key, value := range fields {
		column, ok := columnByField[key]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}

	query := fmt.Sprintf(`
	UPDATE books
	SET %s
	WHERE id = $%d
	RETURNING id, title, author, genre, isbn, description, price, created_at, updated_at`,
		strings.Join(sets, ", "), argn)
	args = append(args, id)

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, args...).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ISBN, &b.Description, &b.Price, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Book{}, ErrDuplicateISBN
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) CountByIDs(ctx context.Context, ids []string) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var count int
	err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books WHERE id = ANY($1::uuid[])`, ids).Scan(&count)
	return count, err
}
