package controllers

import (
	"time"

	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/storage"
)

// UserListItem is the public list shape.
type UserListItem struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserDetail is the public detail shape.
type UserDetail struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

// UserResponse is what an account owner sees. The password is write-only.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	IsStaff   bool   `json:"is_staff"`
}

type PostListItem struct {
	ID           uint      `json:"id"`
	UserUsername string    `json:"user_username"`
	Text         string    `json:"text"`
	MediaImage   *string   `json:"media_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type PostDetail struct {
	PostListItem
	LikesCount    int64 `json:"likes_count"`
	DislikesCount int64 `json:"dislikes_count"`
}

type LikeItem struct {
	ID           uint      `json:"id"`
	Post         uint      `json:"post"`
	UserUsername string    `json:"user_username"`
	CreatedAt    time.Time `json:"created_at"`
}

type MediaImageResponse struct {
	ID         uint   `json:"id"`
	MediaImage string `json:"media_image"`
}

func newUserListItem(u *models.User) UserListItem {
	return UserListItem{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func newUserDetail(u *models.User) UserDetail {
	return UserDetail{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Bio: u.Bio}
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		IsStaff:   u.IsStaff,
	}
}

// mediaURL resolves a stored object key to the URL clients fetch.
func mediaURL(media storage.MediaStore, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	if media == nil {
		return key
	}
	u := media.URL(*key)
	return &u
}

// newPostListItem expects p.User to be loaded.
func newPostListItem(p *models.Post, media storage.MediaStore) PostListItem {
	return PostListItem{
		ID:           p.ID,
		UserUsername: p.User.Username,
		Text:         p.Text,
		MediaImage:   mediaURL(media, p.MediaImage),
		CreatedAt:    p.CreatedAt,
	}
}

func newLikeItem(l *models.Like) LikeItem {
	return LikeItem{ID: l.ID, Post: l.PostID, UserUsername: l.User.Username, CreatedAt: l.CreatedAt}
}
