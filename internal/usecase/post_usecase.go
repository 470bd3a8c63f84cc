package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/pkg/logger"
	"boulderbuddy/pkg/queue"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type DeleteResult struct {
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
}

type PostUseCase interface {
	CreatePost(userID, content string) (*entity.Post, error)
	EditPost(postID, userID, content string) (*entity.Post, error)
	DeletePost(postID, userID string) (*DeleteResult, error)
	ToggleLike(userID, postID string) (bool, error)
	GetLikeCount(postID string) (int64, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(userID, content string) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", entity.ErrValidation)
	}

	post := &entity.Post{
		UserID:  userID,
		Content: content,
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (uc *postUseCase) EditPost(postID, userID, content string) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", entity.ErrValidation)
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %s", entity.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	if post.UserID != userID {
		return nil, fmt.Errorf("%w: you can only edit your own posts", entity.ErrForbidden)
	}

	post.Content = content
	post.UpdatedAt = time.Now()

	if err := uc.postRepo.Update(post); err != nil {
		uc.logger.Error("Failed to update post: %v", err)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// DeletePost removes the post and all of its likes. The author id is
// returned alongside so callers can patch that author's cached
// profile feed.
func (uc *postUseCase) DeletePost(postID, userID string) (*DeleteResult, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %s", entity.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	if post.UserID != userID {
		return nil, fmt.Errorf("%w: you can only delete your own posts", entity.ErrForbidden)
	}

	if err := uc.postRepo.DeleteWithLikes(postID); err != nil {
		uc.logger.Error("Failed to delete post: %v", err)
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Del(context.Background(), likeCountKey(postID))
	}

	return &DeleteResult{PostID: postID, AuthorID: post.UserID}, nil
}

// ToggleLike flips the existence of the (actor, post) like row and
// reports the new state. Repeated toggles alternate by definition.
func (uc *postUseCase) ToggleLike(userID, postID string) (bool, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: post %s", entity.ErrNotFound, postID)
		}
		return false, fmt.Errorf("failed to load post: %w", err)
	}

	isLiked, err := uc.postRepo.IsLiked(userID, postID)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return false, fmt.Errorf("failed to check like status: %w", err)
	}

	ctx := context.Background()

	if isLiked {
		if err := uc.postRepo.DeleteLike(userID, postID); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, fmt.Errorf("failed to unlike post: %w", err)
		}
		if uc.redisClient != nil {
			uc.redisClient.Decr(ctx, likeCountKey(postID))
		}
		return false, nil
	}

	if err := uc.postRepo.CreateLike(userID, postID); err != nil {
		uc.logger.Error("Failed to create like: %v", err)
		return false, fmt.Errorf("failed to like post: %w", err)
	}
	if uc.redisClient != nil {
		uc.redisClient.Incr(ctx, likeCountKey(postID))
	}

	if uc.queueClient != nil && post.UserID != userID {
		go func() {
			task := map[string]interface{}{
				"type":     "like",
				"user_id":  post.UserID,
				"liker_id": userID,
				"post_id":  postID,
				"priority": 3,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like notification task: %v", err)
			}
		}()
	}

	return true, nil
}

func (uc *postUseCase) GetLikeCount(postID string) (int64, error) {
	ctx := context.Background()

	if uc.redisClient != nil {
		if count, err := uc.redisClient.Get(ctx, likeCountKey(postID)).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := uc.postRepo.GetLikeCount(postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, likeCountKey(postID), count, 0)
	}
	return count, nil
}

func likeCountKey(postID string) string {
	return "post:likes:" + postID
}
