package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID      string `gorm:"type:uuid;primary_key;index:idx_posts_created_at_id,priority:2" json:"id"`
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Keyset pagination orders by (created_at DESC, id DESC); the
	// composite index backing it lives in the migration.
	CreatedAt time.Time `gorm:"index:idx_posts_created_at_id,priority:1" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User UserModel `gorm:"foreignKey:UserID" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
