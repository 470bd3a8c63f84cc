package persistent

import (
	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	Update(post *entity.Post) error
	DeleteWithLikes(id string) error

	CreateLike(userID, postID string) error
	DeleteLike(userID, postID string) error
	IsLiked(userID, postID string) (bool, error)
	GetLikeCount(postID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	return r.db.Save(postModel).Error
}

// DeleteWithLikes removes the post and its likes in one transaction so
// no orphan like rows survive the delete.
func (r *postRepository) DeleteWithLikes(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.PostModel{}).Error
	})
}

func (r *postRepository) CreateLike(userID, postID string) error {
	likeModel := &model.LikeModel{
		ID:     uuid.New().String(),
		UserID: userID,
		PostID: postID,
	}
	return r.db.Create(likeModel).Error
}

func (r *postRepository) DeleteLike(userID, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.LikeModel{}).Error
}

func (r *postRepository) IsLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetLikeCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
