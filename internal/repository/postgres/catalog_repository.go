package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

type matchRow struct {
	ID              string         `db:"id"`
	Nickname        string         `db:"nickname"`
	PhotoURL        string         `db:"photo_url"`
	PhotoURLs       pq.StringArray `db:"photo_urls"`
	Gender          string         `db:"gender"`
	Age             string         `db:"age"`
	Language        string         `db:"language"`
	Interests       pq.StringArray `db:"interests"`
	Bio             string         `db:"bio"`
	Distance        string         `db:"distance"`
	ActiveChatCount int            `db:"active_chat_count"`
}

func (r *matchRow) toDomain() *domain.MatchProfile {
	return &domain.MatchProfile{
		ID:              r.ID,
		Nickname:        r.Nickname,
		PhotoURL:        r.PhotoURL,
		PhotoURLs:       []string(r.PhotoURLs),
		Gender:          domain.Gender(r.Gender),
		Age:             r.Age,
		Language:        r.Language,
		Interests:       []string(r.Interests),
		Bio:             r.Bio,
		Distance:        r.Distance,
		ActiveChatCount: r.ActiveChatCount,
	}
}

func (r *catalogRepository) ListMatches(ctx context.Context) ([]*domain.MatchProfile, error) {
	var rows []matchRow
	query := `SELECT * FROM matches ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	matches := make([]*domain.MatchProfile, 0, len(rows))
	for i := range rows {
		matches = append(matches, rows[i].toDomain())
	}
	return matches, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*domain.MatchProfile, error) {
	var row matchRow
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// Seed inserts catalog entries, leaving existing rows untouched.
func Seed(ctx context.Context, db *sqlx.DB, matches []domain.MatchProfile) error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id                TEXT PRIMARY KEY,
			nickname          TEXT NOT NULL,
			photo_url         TEXT NOT NULL,
			photo_urls        TEXT[] NOT NULL DEFAULT '{}',
			gender            TEXT NOT NULL,
			age               TEXT NOT NULL,
			language          TEXT NOT NULL,
			interests         TEXT[] NOT NULL DEFAULT '{}',
			bio               TEXT NOT NULL DEFAULT '',
			distance          TEXT NOT NULL DEFAULT '',
			active_chat_count INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create matches table: %w", err)
	}

	query := `
		INSERT INTO matches (
			id, nickname, photo_url, photo_urls, gender, age,
			language, interests, bio, distance, active_chat_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`
	for _, m := range matches {
		_, err := db.ExecContext(
			ctx, query,
			m.ID, m.Nickname, m.PhotoURL, pq.Array(m.PhotoURLs),
			string(m.Gender), m.Age, m.Language, pq.Array(m.Interests),
			m.Bio, m.Distance, m.ActiveChatCount,
		)
		if err != nil {
			return fmt.Errorf("failed to seed match %s: %w", m.ID, err)
		}
	}
	return nil
}
