package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowModel stores the directed follower -> followee edge.
type FollowModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FolloweeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower UserModel `gorm:"foreignKey:FollowerID" json:"-"`
	Followee UserModel `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (FollowModel) TableName() string {
	return "follows"
}

func (f *FollowModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
