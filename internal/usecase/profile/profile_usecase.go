package profile

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// UseCase owns the local user's profile for the session. The profile is
// created once, is immutable afterwards, and is discarded on session reset.
type UseCase struct {
	store    repository.MessageStore
	validate *validator.Validate

	mu      sync.RWMutex
	current *domain.UserProfile
}

func NewUseCase(store repository.MessageStore) *UseCase {
	return &UseCase{
		store:    store,
		validate: validator.New(),
	}
}

// CreateProfileRequest carries the setup form. Both agreement categories are
// required: validator treats a false bool as missing, which is exactly the
// consent gate.
type CreateProfileRequest struct {
	Nickname     string        `json:"nickname" validate:"required"`
	PhotoURL     string        `json:"photo_url" validate:"omitempty,url"`
	Gender       domain.Gender `json:"gender" validate:"required,oneof=Male Female Non-binary"`
	Age          string        `json:"age"`
	Language     string        `json:"language"`
	Interests    []string      `json:"interests" validate:"max=5"`
	AgreeTerms   bool          `json:"agree_terms" validate:"required"`
	AgreePrivacy bool          `json:"agree_privacy" validate:"required"`
}

// Create validates the setup form, persists the profile to the users
// collection and pins it as the session profile.
func (uc *UseCase) Create(ctx context.Context, req *CreateProfileRequest) (*domain.UserProfile, error) {
	req.Nickname = strings.TrimSpace(req.Nickname)
	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current != nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	profile := &domain.UserProfile{
		Nickname:  req.Nickname,
		PhotoURL:  req.PhotoURL,
		Gender:    req.Gender,
		Age:       req.Age,
		Language:  req.Language,
		Interests: req.Interests,
		CreatedAt: time.Now(),
	}

	id, err := uc.store.SaveUserProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	profile.ID = id

	uc.current = profile
	out := *profile
	return &out, nil
}

// Current returns the session profile.
func (uc *UseCase) Current() (*domain.UserProfile, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.current == nil {
		return nil, domain.ErrProfileNotFound
	}
	out := *uc.current
	return &out, nil
}

// Reset discards the session profile. Idempotent.
func (uc *UseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = nil
}

// RandomStarter returns a randomized starter profile for the setup screen.
func (uc *UseCase) RandomStarter() *domain.UserProfile {
	genders := []domain.Gender{domain.GenderMale, domain.GenderFemale, domain.GenderNonBinary}

	shuffled := make([]string, len(domain.InterestOptions))
	copy(shuffled, domain.InterestOptions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &domain.UserProfile{
		Nickname: domain.RandomNicknames[rand.Intn(len(domain.RandomNicknames))],
		// Bias towards the younger age groups for the demo feed.
		Age:       domain.AgeGroups[rand.Intn(2)],
		Gender:    genders[rand.Intn(len(genders))],
		Language:  domain.Languages[rand.Intn(len(domain.Languages))],
		Interests: shuffled[:3],
		PhotoURL:  fmt.Sprintf("https://picsum.photos/seed/%d/400/400", rand.Intn(1000)),
	}
}
