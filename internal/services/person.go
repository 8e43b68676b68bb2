package services

import (
	"context"

	"github.com/diabros/apiserver/types"
)

// PersonRepository defines persistence operations for people.
type PersonRepository interface {
	List(ctx context.Context) ([]types.Person, error)
	Get(ctx context.Context, id int) (types.Person, error)
	Create(ctx context.Context, person types.Person) (types.Person, error)
}

// PersonService encapsulates person use-cases.
type PersonService struct {
	repo PersonRepository
	recs RecommendationRepository
}

func NewPersonService(repo PersonRepository, recs RecommendationRepository) *PersonService {
	return &PersonService{repo: repo, recs: recs}
}

func (s *PersonService) List(ctx context.Context) ([]types.Person, error) {
	return s.repo.List(ctx)
}

// GetWithBooks loads a person together with the books they recommend.
func (s *PersonService) GetWithBooks(ctx context.Context, id int) (types.Person, []types.Book, error) {
	person, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Person{}, nil, err
	}
	books, err := s.recs.ListBooksForPerson(ctx, id)
	if err != nil {
		return types.Person{}, nil, err
	}
	return person, books, nil
}

func (s *PersonService) Create(ctx context.Context, person types.Person) (types.Person, error) {
	return s.repo.Create(ctx, person)
}
