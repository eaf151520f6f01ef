package catalog

import (
	"context"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// StaticCatalog serves the built-in match catalog. Default backend when no
// database is configured.
type StaticCatalog struct {
	matches []domain.MatchProfile
}

func NewStaticCatalog() repository.CatalogRepository {
	return &StaticCatalog{matches: DefaultMatches()}
}

func (c *StaticCatalog) ListMatches(_ context.Context) ([]*domain.MatchProfile, error) {
	out := make([]*domain.MatchProfile, len(c.matches))
	for i := range c.matches {
		m := c.matches[i]
		out[i] = &m
	}
	return out, nil
}

func (c *StaticCatalog) GetByID(_ context.Context, id string) (*domain.MatchProfile, error) {
	for i := range c.matches {
		if c.matches[i].ID == id {
			m := c.matches[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

// DefaultMatches returns the seed catalog.
func DefaultMatches() []domain.MatchProfile {
	return []domain.MatchProfile{
		{
			ID:       "1",
			Nickname: "Ji-won",
			PhotoURL: "https://picsum.photos/seed/p1/600/800",
			PhotoURLs: []string{
				"https://picsum.photos/seed/p1a/600/800",
				"https://picsum.photos/seed/p1b/600/800",
				"https://picsum.photos/seed/p1c/600/800",
			},
			Gender:          domain.GenderFemale,
			Age:             "20s",
			Language:        "Korean",
			Interests:       []string{"Coffee", "Travel", "Art"},
			Bio:             "Looking for someone to explore hidden cafes with!",
			Distance:        "2km away",
			ActiveChatCount: 3,
		},
		{
			ID:       "2",
			Nickname: "Min-ho",
			PhotoURL: "https://picsum.photos/seed/p2/600/800",
			PhotoURLs: []string{
				"https://picsum.photos/seed/p2a/600/800",
				"https://picsum.photos/seed/p2b/600/800",
			},
			Gender:          domain.GenderMale,
			Age:             "20s",
			Language:        "Korean",
			Interests:       []string{"Fitness", "Cooking", "Tech"},
			Bio:             "Passionate about fitness and coding. Let's grab a healthy dinner?",
			Distance:        "5km away",
			ActiveChatCount: 12,
		},
		{
			ID:       "3",
			Nickname: "Yuna",
			PhotoURL: "https://picsum.photos/seed/p3/600/800",
			PhotoURLs: []string{
				"https://picsum.photos/seed/p3a/600/800",
				"https://picsum.photos/seed/p3b/600/800",
				"https://picsum.photos/seed/p3c/600/800",
			},
			Gender:          domain.GenderFemale,
			Age:             "20s",
			Language:        "Korean",
			Interests:       []string{"Gaming", "Anime", "Photography"},
			Bio:             "Casual gamer looking for a Player 2. ✨",
			Distance:        "1.2km away",
			ActiveChatCount: 45,
		},
		{
			ID:       "4",
			Nickname: "Daniel",
			PhotoURL: "https://picsum.photos/seed/p4/600/800",
			PhotoURLs: []string{
				"https://picsum.photos/seed/p4a/600/800",
				"https://picsum.photos/seed/p4b/600/800",
			},
			Gender:          domain.GenderMale,
			Age:             "20s",
			Language:        "English",
			Interests:       []string{"Music", "Hiking", "Wine"},
			Bio:             "Let's go on a hike and watch the sunset.",
			Distance:        "8km away",
			ActiveChatCount: 7,
		},
	}
}
