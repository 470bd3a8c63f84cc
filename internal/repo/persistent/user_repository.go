package persistent

import (
	"errors"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error

	CreateFollow(followerID, followeeID string) error
	DeleteFollow(followerID, followeeID string) error
	IsFollowing(followerID, followeeID string) (bool, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
	CountPosts(userID string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Save(userModel).Error
}

func (r *userRepository) CreateFollow(followerID, followeeID string) error {
	var existing model.FollowModel
	err := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	followModel := &model.FollowModel{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return r.db.Create(followModel).Error
}

func (r *userRepository) DeleteFollow(followerID, followeeID string) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&model.FollowModel{}).Error
}

func (r *userRepository) IsFollowing(followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountPosts(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
