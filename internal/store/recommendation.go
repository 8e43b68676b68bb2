package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/diabros/apiserver/types"
)

// RecommendationRepository handles persistence for person-book links.
type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create inserts a new link. The unique constraint on
// (person_id, book_id) is the duplicate guard; a violation is reported
// as ErrConflict.
func (r *RecommendationRepository) Create(ctx context.Context, rec types.Recommendation) (types.Recommendation, error) {
	rec.CreatedAt = time.Now()

	const query = `
		INSERT INTO recommendations (person_id, book_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		rec.PersonID,
		rec.BookID,
		rec.CreatedAt,
	).Scan(&rec.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Recommendation{}, ErrConflict
		}
		return types.Recommendation{}, err
	}
	return rec, nil
}

// ListDetailed returns all links with the joined person name and book
// title/author, newest first.
func (r *RecommendationRepository) ListDetailed(ctx context.Context) ([]types.RecommendationDetail, error) {
	const query = `
		SELECT r.id, r.person_id, r.book_id, r.created_at, p.name, b.title, b.author
		FROM recommendations r
		JOIN people p ON p.id = r.person_id
		JOIN books b ON b.id = r.book_id
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]types.RecommendationDetail, 0)
	for rows.Next() {
		var detail types.RecommendationDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.PersonID,
			&detail.BookID,
			&detail.CreatedAt,
			&detail.PersonName,
			&detail.BookTitle,
			&detail.BookAuthor,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// ListPeopleForBook returns the people who recommend the given book,
// newest link first.
func (r *RecommendationRepository) ListPeopleForBook(ctx context.Context, bookID int) ([]types.Person, error) {
	const query = `
		SELECT p.id, p.name, p.bio, p.avatar_url, p.created_at
		FROM recommendations r
		JOIN people p ON p.id = r.person_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]types.Person, 0)
	for rows.Next() {
		var person types.Person
		if err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.Bio,
			&person.AvatarURL,
			&person.CreatedAt,
		); err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

// ListBooksForPerson returns the books the given person recommends,
// newest link first.
func (r *RecommendationRepository) ListBooksForPerson(ctx context.Context, personID int) ([]types.Book, error) {
	const query = `
		SELECT b.id, b.title, b.author, b.description, b.cover_image_url, b.version, b.tokopedia_url, b.openlibrary_id, b.created_at
		FROM recommendations r
		JOIN books b ON b.id = r.book_id
		WHERE r.person_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, query, personID)
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
