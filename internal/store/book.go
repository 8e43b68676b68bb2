package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/diabros/apiserver/types"
)

// BookRepository handles persistence for books.
type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List returns all books, newest first.
func (r *BookRepository) List(ctx context.Context) ([]types.Book, error) {
	const query = `
		SELECT id, title, author, description, cover_image_url, version, tokopedia_url, openlibrary_id, created_at
		FROM books
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]types.Book, 0)
	for rows.Next() {
		var book types.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.CoverImageURL,
			&book.Version,
			&book.TokopediaURL,
			&book.OpenLibraryID,
			&book.CreatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

func (r *BookRepository) Get(ctx context.Context, id int) (types.Book, error) {
	const query = `
		SELECT id, title, author, description, cover_image_url, version, tokopedia_url, openlibrary_id, created_at
		FROM books
		WHERE id = $1`
	var book types.Book
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CoverImageURL,
		&book.Version,
		&book.TokopediaURL,
		&book.OpenLibraryID,
		&book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Book{}, ErrNotFound
		}
		return types.Book{}, err
	}
	return book, nil
}

func (r *BookRepository) Create(ctx context.Context, book types.Book) (types.Book, error) {
	book.CreatedAt = time.Now()

	const query = `
		INSERT INTO books (title, author, description, cover_image_url, version, tokopedia_url, openlibrary_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.Description,
		book.CoverImageURL,
		book.Version,
		book.TokopediaURL,
		book.OpenLibraryID,
		book.CreatedAt,
	).Scan(&book.ID); err != nil {
		return types.Book{}, err
	}
	return book, nil
}
