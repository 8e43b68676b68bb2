package services

import (
	"context"

	"github.com/diabros/apiserver/types"
)

// RecommendationRepository defines persistence operations for
// person-book links.
type RecommendationRepository interface {
	Create(ctx context.Context, rec types.Recommendation) (types.Recommendation, error)
	ListDetailed(ctx context.Context) ([]types.RecommendationDetail, error)
	ListPeopleForBook(ctx context.Context, bookID int) ([]types.Person, error)
	ListBooksForPerson(ctx context.Context, personID int) ([]types.Book, error)
}

// RecommendationService encapsulates recommendation use-cases.
type RecommendationService struct {
	repo RecommendationRepository
}

func NewRecommendationService(repo RecommendationRepository) *RecommendationService {
	return &RecommendationService{repo: repo}
}

// Create links a person to a book. Duplicate pairs surface as
// store.ErrConflict from the repository.
func (s *RecommendationService) Create(ctx context.Context, rec types.Recommendation) (types.Recommendation, error) {
	return s.repo.Create(ctx, rec)
}

func (s *RecommendationService) ListDetailed(ctx context.Context) ([]types.RecommendationDetail, error) {
	return s.repo.ListDetailed(ctx)
}
