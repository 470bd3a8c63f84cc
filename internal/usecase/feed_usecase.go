package usecase

import (
	"fmt"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/pkg/logger"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

type FeedUseCase interface {
	GetFeed(filter entity.FeedFilter, viewerID string, cursor *entity.Cursor, limit int) (*entity.FeedPage, error)
}

type feedUseCase struct {
	feedRepo persistent.FeedRepository
	logger   *logger.Logger
}

func NewFeedUseCase(feedRepo persistent.FeedRepository, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		feedRepo: feedRepo,
		logger:   logger,
	}
}

// GetFeed returns one page of the feed in (createdAt DESC, id DESC)
// order starting strictly after cursor, plus the continuation cursor
// when the page was full. Chaining cursors yields disjoint prefixes of
// the total ordering with no duplicates or omissions.
func (uc *feedUseCase) GetFeed(filter entity.FeedFilter, viewerID string, cursor *entity.Cursor, limit int) (*entity.FeedPage, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", entity.ErrValidation)
	}
	if limit == 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if filter.Kind == "" {
		filter.Kind = entity.FilterAll
	}
	if filter.Kind == entity.FilterFollowing {
		if viewerID == "" {
			// An anonymous following feed degenerates to the global feed.
			filter.Kind = entity.FilterAll
		} else {
			filter.ViewerID = viewerID
		}
	}

	rows, err := uc.feedRepo.ListPage(filter, cursor, limit)
	if err != nil {
		uc.logger.Error("Failed to list feed page: %v", err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	var nextCursor *entity.Cursor
	if len(rows) > limit {
		// The overflow row marks the boundary of the next page.
		next := rows[limit]
		rows = rows[:limit]
		nextCursor = &entity.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}
	}

	postIDs := make([]string, len(rows))
	authorIDs := make([]string, 0, len(rows))
	seenAuthors := make(map[string]bool, len(rows))
	for i, post := range rows {
		postIDs[i] = post.ID
		if !seenAuthors[post.UserID] {
			seenAuthors[post.UserID] = true
			authorIDs = append(authorIDs, post.UserID)
		}
	}

	likeCounts, err := uc.feedRepo.LikeCounts(postIDs)
	if err != nil {
		uc.logger.Error("Failed to get like counts: %v", err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	likedByMe, err := uc.feedRepo.LikedByUser(viewerID, postIDs)
	if err != nil {
		uc.logger.Error("Failed to check liked posts: %v", err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	authors, err := uc.feedRepo.AuthorSummaries(authorIDs)
	if err != nil {
		uc.logger.Error("Failed to get author summaries: %v", err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	posts := make([]entity.FeedPost, len(rows))
	for i, post := range rows {
		posts[i] = entity.FeedPost{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
			LikeCount: likeCounts[post.ID],
			LikedByMe: likedByMe[post.ID],
			User:      authors[post.UserID],
		}
	}

	return &entity.FeedPage{Posts: posts, NextCursor: nextCursor}, nil
}
