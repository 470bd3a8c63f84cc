package usecase

import (
	"errors"
	"fmt"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/pkg/logger"
	"boulderbuddy/pkg/queue"

	"gorm.io/gorm"
)

type ProfileUseCase interface {
	GetProfile(userID, viewerID string) (*entity.Profile, error)
	ToggleFollow(viewerID, targetID string) (bool, error)
}

type profileUseCase struct {
	userRepo    persistent.UserRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewProfileUseCase(userRepo persistent.UserRepository, queueClient *queue.Client, logger *logger.Logger) ProfileUseCase {
	return &profileUseCase{
		userRepo:    userRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *profileUseCase) GetProfile(userID, viewerID string) (*entity.Profile, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	postsCount, err := uc.userRepo.CountPosts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	followersCount, err := uc.userRepo.CountFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	followingCount, err := uc.userRepo.CountFollowing(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	isFollowing := false
	if viewerID != "" && viewerID != userID {
		isFollowing, err = uc.userRepo.IsFollowing(viewerID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow status: %w", err)
		}
	}

	return &entity.Profile{
		ID:             user.ID,
		Username:       user.Username,
		RealName:       user.RealName,
		AvatarURL:      user.AvatarURL,
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
	}, nil
}

// ToggleFollow flips the directed follow edge from the viewer to the
// target and reports the new state.
func (uc *profileUseCase) ToggleFollow(viewerID, targetID string) (bool, error) {
	if viewerID == targetID {
		return false, fmt.Errorf("%w: cannot follow yourself", entity.ErrValidation)
	}

	if _, err := uc.userRepo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: user %s", entity.ErrNotFound, targetID)
		}
		return false, fmt.Errorf("failed to load user: %w", err)
	}

	isFollowing, err := uc.userRepo.IsFollowing(viewerID, targetID)
	if err != nil {
		uc.logger.Error("Failed to check follow status: %v", err)
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}

	if isFollowing {
		if err := uc.userRepo.DeleteFollow(viewerID, targetID); err != nil {
			uc.logger.Error("Failed to delete follow: %v", err)
			return false, fmt.Errorf("failed to unfollow: %w", err)
		}
		return false, nil
	}

	if err := uc.userRepo.CreateFollow(viewerID, targetID); err != nil {
		uc.logger.Error("Failed to create follow: %v", err)
		return false, fmt.Errorf("failed to follow: %w", err)
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":        "follow",
				"user_id":     targetID,
				"follower_id": viewerID,
				"priority":    4,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish follow notification task: %v", err)
			}
		}()
	}

	return true, nil
}
