package http

import (
	"net/http"

	"boulderbuddy/internal/usecase"
	"boulderbuddy/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// GetProfile godoc
// @Summary      Get a user profile
// @Description  Get a user's public profile with post, follower and following counts. is_following reflects the authenticated viewer when present.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("id")
	viewerID := c.GetString("user_id")

	profile, err := h.profileUseCase.GetProfile(userID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// FollowUser godoc
// @Summary      Follow a user
// @Description  Follow a user (toggle - if already following, unfollows)
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profiles/{id}/follow [post]
func (h *ProfileHandler) FollowUser(c *gin.Context) {
	targetID := c.Param("id")
	viewerID := c.GetString("user_id")

	following, err := h.profileUseCase.ToggleFollow(viewerID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Followed"
	if !following {
		message = "Unfollowed"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "following": following})
}
