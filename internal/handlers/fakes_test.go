package handlers

import (
	"context"
	"time"

	"github.com/diabros/apiserver/internal/store"
	"github.com/diabros/apiserver/types"
)

// In-memory repositories standing in for the Postgres stores. They
// mirror the store contract: newest-first ordering, ErrNotFound for
// unknown ids, ErrConflict for uniqueness violations.

type fakeBookRepo struct {
	books  []types.Book
	nextID int
	err    error
}

func (f *fakeBookRepo) List(ctx context.Context) ([]types.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append(make([]types.Book, 0, len(f.books)), f.books...), nil
}

func (f *fakeBookRepo) Get(ctx context.Context, id int) (types.Book, error) {
	for _, book := range f.books {
		if book.ID == id {
			return book, nil
		}
	}
	return types.Book{}, store.ErrNotFound
}

func (f *fakeBookRepo) Create(ctx context.Context, book types.Book) (types.Book, error) {
	if f.err != nil {
		return types.Book{}, f.err
	}
	f.nextID++
	book.ID = f.nextID
	book.CreatedAt = time.Now()
	f.books = append([]types.Book{book}, f.books...)
	return book, nil
}

type fakePersonRepo struct {
	people []types.Person
	nextID int
}

func (f *fakePersonRepo) List(ctx context.Context) ([]types.Person, error) {
	return append(make([]types.Person, 0, len(f.people)), f.people...), nil
}

func (f *fakePersonRepo) Get(ctx context.Context, id int) (types.Person, error) {
	for _, person := range f.people {
		if person.ID == id {
			return person, nil
		}
	}
	return types.Person{}, store.ErrNotFound
}

func (f *fakePersonRepo) Create(ctx context.Context, person types.Person) (types.Person, error) {
	f.nextID++
	person.ID = f.nextID
	person.CreatedAt = time.Now()
	f.people = append([]types.Person{person}, f.people...)
	return person, nil
}

type fakeRecRepo struct {
	recs   []types.Recommendation
	books  *fakeBookRepo
	people *fakePersonRepo
	nextID int
}

func (f *fakeRecRepo) Create(ctx context.Context, rec types.Recommendation) (types.Recommendation, error) {
	for _, existing := range f.recs {
		if existing.PersonID == rec.PersonID && existing.BookID == rec.BookID {
			return types.Recommendation{}, store.ErrConflict
		}
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	f.recs = append([]types.Recommendation{rec}, f.recs...)
	return rec, nil
}

func (f *fakeRecRepo) ListDetailed(ctx context.Context) ([]types.RecommendationDetail, error) {
	details := make([]types.RecommendationDetail, 0, len(f.recs))
	for _, rec := range f.recs {
		detail := types.RecommendationDetail{Recommendation: rec}
		if person, err := f.people.Get(ctx, rec.PersonID); err == nil {
			detail.PersonName = person.Name
		}
		if book, err := f.books.Get(ctx, rec.BookID); err == nil {
			detail.BookTitle = book.Title
			detail.BookAuthor = book.Author
		}
		details = append(details, detail)
	}
	return details, nil
}

func (f *fakeRecRepo) ListPeopleForBook(ctx context.Context, bookID int) ([]types.Person, error) {
	people := make([]types.Person, 0)
	for _, rec := range f.recs {
		if rec.BookID != bookID {
			continue
		}
		person, err := f.people.Get(ctx, rec.PersonID)
		if err != nil {
			continue
		}
		people = append(people, person)
	}
	return people, nil
}

func (f *fakeRecRepo) ListBooksForPerson(ctx context.Context, personID int) ([]types.Book, error) {
	books := make([]types.Book, 0)
	for _, rec := range f.recs {
		if rec.PersonID != personID {
			continue
		}
		book, err := f.books.Get(ctx, rec.BookID)
		if err != nil {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return types.User{}, store.ErrConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) RecordLogin(ctx context.Context, id int, at time.Time) error {
	for i := range f.users {
		if f.users[i].ID == id {
			stamp := at
			f.users[i].LastLogin = &stamp
			return nil
		}
	}
	return store.ErrNotFound
}
