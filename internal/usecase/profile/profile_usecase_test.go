package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository/memory"
)

func validRequest() *CreateProfileRequest {
	return &CreateProfileRequest{
		Nickname:     "Sky",
		PhotoURL:     "https://picsum.photos/seed/42/400/400",
		Gender:       domain.GenderFemale,
		Age:          "20s",
		Language:     "English",
		Interests:    []string{"Coffee", "Travel"},
		AgreeTerms:   true,
		AgreePrivacy: true,
	}
}

func TestCreateProfile(t *testing.T) {
	uc := NewUseCase(memory.NewMessageStore())

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Sky", created.Nickname)
	assert.False(t, created.CreatedAt.IsZero())

	current, err := uc.Current()
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
}

func TestCreateProfileValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *CreateProfileRequest)
	}{
		{"missing nickname", func(req *CreateProfileRequest) { req.Nickname = "" }},
		{"whitespace nickname", func(req *CreateProfileRequest) { req.Nickname = "   " }},
		{"unknown gender", func(req *CreateProfileRequest) { req.Gender = "Other" }},
		{"bad photo url", func(req *CreateProfileRequest) { req.PhotoURL = "not a url" }},
		{"too many interests", func(req *CreateProfileRequest) {
			req.Interests = []string{"Coffee", "Travel", "Art", "Music", "Gaming", "Cooking"}
		}},
		{"terms not agreed", func(req *CreateProfileRequest) { req.AgreeTerms = false }},
		{"privacy not agreed", func(req *CreateProfileRequest) { req.AgreePrivacy = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(memory.NewMessageStore())
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Create(context.Background(), req)
			require.Error(t, err)

			var verr validator.ValidationErrors
			assert.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)

			_, err = uc.Current()
			assert.ErrorIs(t, err, domain.ErrProfileNotFound, "failed setup must not pin a profile")
		})
	}
}

func TestCreateProfileTrimsNickname(t *testing.T) {
	uc := NewUseCase(memory.NewMessageStore())
	req := validRequest()
	req.Nickname = "  Luna  "

	created, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Luna", created.Nickname)
}

func TestProfileIsImmutable(t *testing.T) {
	uc := NewUseCase(memory.NewMessageStore())
	ctx := context.Background()

	_, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.Nickname = "Luna"
	_, err = uc.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)

	current, err := uc.Current()
	require.NoError(t, err)
	assert.Equal(t, "Sky", current.Nickname)
}

func TestResetAllowsNewProfile(t *testing.T) {
	uc := NewUseCase(memory.NewMessageStore())
	ctx := context.Background()

	_, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	uc.Reset()
	uc.Reset() // idempotent

	_, err = uc.Current()
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = uc.Create(ctx, validRequest())
	assert.NoError(t, err)
}

func TestRandomStarter(t *testing.T) {
	uc := NewUseCase(memory.NewMessageStore())

	starter := uc.RandomStarter()

	assert.Contains(t, domain.RandomNicknames, starter.Nickname)
	assert.Contains(t, domain.AgeGroups[:2], starter.Age)
	assert.Contains(t, domain.Languages, starter.Language)
	assert.Len(t, starter.Interests, 3)
	for _, interest := range starter.Interests {
		assert.Contains(t, domain.InterestOptions, interest)
	}
}
