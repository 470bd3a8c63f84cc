package http

import (
	"net/http"
	"strconv"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/usecase"
	"boulderbuddy/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// parseFeedQuery pulls the shared cursor and limit parameters off the
// request. A malformed cursor or limit is a client error.
func parseFeedQuery(c *gin.Context) (*entity.Cursor, int, bool) {
	var cursor *entity.Cursor
	if raw := c.Query("cursor"); raw != "" {
		decoded, err := entity.DecodeCursor(raw)
		if err != nil {
			respondError(c, err)
			return nil, 0, false
		}
		cursor = decoded
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return nil, 0, false
		}
		limit = parsed
	}

	return cursor, limit, true
}

// GetFeed godoc
// @Summary      Get the post feed
// @Description  Get one page of the feed, newest first. Pass the returned next_cursor to fetch the following page. filter=following requires authentication and restricts the feed to followed authors.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        filter query string false "Feed variant (all or following)" Enums(all, following)
// @Param        cursor query string false "Opaque continuation cursor from a previous page"
// @Param        limit query int false "Page size (default 10, max 100)"
// @Success      200  {object}  entity.FeedPage
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	cursor, limit, ok := parseFeedQuery(c)
	if !ok {
		return
	}

	filter := entity.FeedFilter{Kind: entity.FilterAll}
	if c.Query("filter") == "following" {
		filter.Kind = entity.FilterFollowing
	}

	page, err := h.feedUseCase.GetFeed(filter, viewerID, cursor, limit)
	if err != nil {
		h.logger.Error("Failed to fetch feed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProfilePosts godoc
// @Summary      Get a user's posts
// @Description  Get one page of the posts authored by a single user, newest first, with the same cursor contract as the main feed.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        cursor query string false "Opaque continuation cursor from a previous page"
// @Param        limit query int false "Page size (default 10, max 100)"
// @Success      200  {object}  entity.FeedPage
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profiles/{id}/posts [get]
func (h *FeedHandler) GetProfilePosts(c *gin.Context) {
	viewerID := c.GetString("user_id")
	authorID := c.Param("id")

	cursor, limit, ok := parseFeedQuery(c)
	if !ok {
		return
	}

	filter := entity.FeedFilter{Kind: entity.FilterAuthor, AuthorID: authorID}

	page, err := h.feedUseCase.GetFeed(filter, viewerID, cursor, limit)
	if err != nil {
		h.logger.Error("Failed to fetch profile posts: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
