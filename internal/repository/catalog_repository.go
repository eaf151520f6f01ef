package repository

import (
	"context"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

// CatalogRepository serves the read-only match catalog shown in the
// discovery feed.
type CatalogRepository interface {
	ListMatches(ctx context.Context) ([]*domain.MatchProfile, error)
	GetByID(ctx context.Context, id string) (*domain.MatchProfile, error)
}
