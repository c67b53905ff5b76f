package models

import (
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"size:255;not null" json:"text"`
	MediaImage *string   `gorm:"size:512" json:"media_image"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// PostOrdering lists the newest posts first.
const PostOrdering = "created_at DESC, id DESC"
