package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/diabros/apiserver/types"
)

// PersonRepository handles persistence for people.
type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// List returns all people, newest first.
func (r *PersonRepository) List(ctx context.Context) ([]types.Person, error) {
	const query = `
		SELECT id, name, bio, avatar_url, created_at
		FROM people
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *PersonRepository) Get(ctx context.Context, id int) (types.Person, error) {
	const query = `
		SELECT id, name, bio, avatar_url, created_at
		FROM people
		WHERE id = $1`
	var person types.Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.Name,
		&person.Bio,
		&person.AvatarURL,
		&person.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Person{}, ErrNotFound
		}
		return types.Person{}, err
	}
	return person, nil
}

func (r *PersonRepository) Create(ctx context.Context, person types.Person) (types.Person, error) {
	person.CreatedAt = time.Now()

	const query = `
		INSERT INTO people (name, bio, avatar_url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		person.Name,
		person.Bio,
		person.AvatarURL,
		person.CreatedAt,
	).Scan(&person.ID); err != nil {
		return types.Person{}, err
	}
	return person, nil
}
