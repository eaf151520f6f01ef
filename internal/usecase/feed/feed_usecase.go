package feed

import (
	"context"
	"fmt"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// FeedUseCase serves the discovery feed from the read-only match catalog.
type FeedUseCase struct {
	catalog repository.CatalogRepository
}

func NewFeedUseCase(catalog repository.CatalogRepository) *FeedUseCase {
	return &FeedUseCase{catalog: catalog}
}

// GetFeed returns all catalog matches.
func (uc *FeedUseCase) GetFeed(ctx context.Context) ([]*domain.MatchProfile, error) {
	matches, err := uc.catalog.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load match catalog: %w", err)
	}
	return matches, nil
}

// GetMatch returns one catalog entry by identifier.
func (uc *FeedUseCase) GetMatch(ctx context.Context, id string) (*domain.MatchProfile, error) {
	return uc.catalog.GetByID(ctx, id)
}
