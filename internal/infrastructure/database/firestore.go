package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/nearchat/nearchat-backend/internal/config"
)

// NewFirestoreClient creates a Firestore client for the configured project.
func NewFirestoreClient(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is not configured")
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}
