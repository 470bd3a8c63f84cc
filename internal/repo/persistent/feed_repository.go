package persistent

import (
	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/model"

	"gorm.io/gorm"
)

type FeedRepository interface {
	// ListPage returns up to limit+1 posts in (created_at DESC, id DESC)
	// order, strictly after cursor when one is given. The caller pops
	// the overflow row to derive the next cursor.
	ListPage(filter entity.FeedFilter, cursor *entity.Cursor, limit int) ([]*entity.Post, error)
	LikeCounts(postIDs []string) (map[string]int64, error)
	LikedByUser(userID string, postIDs []string) (map[string]bool, error)
	AuthorSummaries(userIDs []string) (map[string]entity.UserSummary, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) ListPage(filter entity.FeedFilter, cursor *entity.Cursor, limit int) ([]*entity.Post, error) {
	query := r.db.Model(&model.PostModel{}).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	switch filter.Kind {
	case entity.FilterAuthor:
		query = query.Where("user_id = ?", filter.AuthorID)
	case entity.FilterFollowing:
		followees := r.db.Model(&model.FollowModel{}).
			Select("followee_id").
			Where("follower_id = ?", filter.ViewerID)
		query = query.Where("user_id IN (?)", followees)
	}

	if cursor != nil {
		// Keyset boundary: strictly after the cursor in the total order.
		// Row-value comparison keeps ties on created_at stable.
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *feedRepository) LikeCounts(postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.Model(&model.LikeModel{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *feedRepository) LikedByUser(userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}

	var likedIDs []string
	err := r.db.Model(&model.LikeModel{}).
		Select("post_id").
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}

	for _, id := range likedIDs {
		liked[id] = true
	}
	return liked, nil
}

func (r *feedRepository) AuthorSummaries(userIDs []string) (map[string]entity.UserSummary, error) {
	summaries := make(map[string]entity.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	var userModels []model.UserModel
	err := r.db.Select("id, username, avatar_url").
		Where("id IN ?", userIDs).
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	for _, m := range userModels {
		summaries[m.ID] = entity.UserSummary{
			ID:        m.ID,
			Username:  m.Username,
			AvatarURL: m.AvatarURL,
		}
	}
	return summaries, nil
}
