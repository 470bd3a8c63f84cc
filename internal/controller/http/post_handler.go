package http

import (
	"net/http"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/usecase"
	"boulderbuddy/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type PostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) formatPostResponse(post *entity.Post, likeCount int64) gin.H {
	return gin.H{
		"id":          post.ID,
		"user_id":     post.UserID,
		"content":     post.Content,
		"likes_count": likeCount,
		"edited":      post.Edited(),
		"created_at":  post.CreatedAt,
		"updated_at":  post.UpdatedAt,
	}
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Publish a text post authored by the current user
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PostRequest true "Post content"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(userID, req.Content)
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.formatPostResponse(post, 0))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Replace the content of a post. Only the author can edit their own posts.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body PostRequest true "New content"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.EditPost(postID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	likeCount, _ := h.postUseCase.GetLikeCount(post.ID)
	c.JSON(http.StatusOK, h.formatPostResponse(post, likeCount))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post and its likes. Only the author can delete their own posts.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	result, err := h.postUseCase.DeletePost(postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Post deleted successfully",
		"post_id":   result.PostID,
		"author_id": result.AuthorID,
	})
}

// LikePost godoc
// @Summary      Like a post
// @Description  Like a post (toggle - if already liked, removes like)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	liked, err := h.postUseCase.ToggleLike(userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	likeCount, _ := h.postUseCase.GetLikeCount(postID)

	message := "Post liked"
	if !liked {
		message = "Post unliked"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "liked": liked, "likes_count": likeCount})
}
