package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
}

func NewProfileHandler(profileUseCase *profile.UseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfile handles POST /profile
// @Summary Create session profile
// @Description Create the local user's profile; one-time, blocks until validation passes
// @Tags profile
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile setup data"
// @Success 201 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	newProfile, err := h.profileUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "profile already exists",
			})
			return
		}
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "profile validation failed",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to create profile",
		})
		return
	}

	c.JSON(http.StatusCreated, newProfile)
}

// GetProfile handles GET /profile
// @Summary Get session profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	current, err := h.profileUseCase.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, current)
}

// RandomProfile handles GET /profile/random
// @Summary Randomized starter profile
// @Description Returns a randomized profile suggestion for the setup screen
// @Tags profile
// @Produce json
// @Success 200 {object} domain.UserProfile
// @Router /profile/random [get]
func (h *ProfileHandler) RandomProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileUseCase.RandomStarter())
}
