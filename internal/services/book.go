package services

import (
	"context"

	"github.com/diabros/apiserver/types"
)

// BookRepository defines persistence operations for books.
type BookRepository interface {
	List(ctx context.Context) ([]types.Book, error)
	Get(ctx context.Context, id int) (types.Book, error)
	Create(ctx context.Context, book types.Book) (types.Book, error)
}

// BookService encapsulates book use-cases.
type BookService struct {
	repo BookRepository
	recs RecommendationRepository
}

func NewBookService(repo BookRepository, recs RecommendationRepository) *BookService {
	return &BookService{repo: repo, recs: recs}
}

func (s *BookService) List(ctx context.Context) ([]types.Book, error) {
	return s.repo.List(ctx)
}

// GetWithRecommenders loads a book together with the people who
// recommend it.
func (s *BookService) GetWithRecommenders(ctx context.Context, id int) (types.Book, []types.Person, error) {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Book{}, nil, err
	}
	people, err := s.recs.ListPeopleForBook(ctx, id)
	if err != nil {
		return types.Book{}, nil, err
	}
	return book, people, nil
}

func (s *BookService) Create(ctx context.Context, book types.Book) (types.Book, error) {
	if book.Version == "" {
		book.Version = types.VersionImported
	}
	return s.repo.Create(ctx, book)
}
