// Package seed fills the database with random users, posts and likes for
// manual testing.
package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

const (
	defaultPassword = "user1234"
	postText        = "Some text"
)

// Bot creates Config.NumberOfUsers users. Each one writes between 1 and
// MaxPostsPerUser posts and then likes between 1 and MaxLikesPerUser posts
// picked at random, with replacement, from every post in the database.
type Bot struct {
	DB     *gorm.DB
	Config config.SeedConfig
	Out    io.Writer
	Rand   *rand.Rand
}

// Result summarises one seeded user.
type Result struct {
	Username string
	Posts    int
	Likes    int
}

func NewBot(db *gorm.DB, cfg config.SeedConfig, out io.Writer) *Bot {
	return &Bot{
		DB:     db,
		Config: cfg,
		Out:    out,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds every user in its own transaction and stops at the first error.
func (b *Bot) Run(ctx context.Context) ([]Result, error) {
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}

	// All seeded users share the same password, so hash it once.
	hash, err := utils.HashPassword(defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	results := make([]Result, 0, b.Config.NumberOfUsers)
	for i := 0; i < b.Config.NumberOfUsers; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := b.seedUser(ctx, hash)
		if err != nil {
			return results, fmt.Errorf("seed user %d: %w", i+1, err)
		}
		results = append(results, res)

		if b.Out != nil {
			fmt.Fprintf(b.Out, "User with %d posts and %d likes created\n", res.Posts, res.Likes)
		}
		logging.Ctx(ctx).Debug().Str("username", res.Username).Int("posts", res.Posts).Int("likes", res.Likes).Msg("seeded user")
	}
	return results, nil
}

func (b *Bot) seedUser(ctx context.Context, passwordHash string) (Result, error) {
	numPosts := 1 + b.Rand.Intn(b.Config.MaxPostsPerUser)
	numLikes := 1 + b.Rand.Intn(b.Config.MaxLikesPerUser)
	name := strings.SplitN(uuid.NewString(), "-", 2)[0]

	user := models.User{
		Username:  "username-" + name,
		Email:     "user-" + name + "@user.com",
		Password:  passwordHash,
		FirstName: "user-" + name + "_first_name",
		LastName:  "user-" + name + "_last_name",
		IsActive:  true,
	}

	tx := b.DB.WithContext(ctx).Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return Result{}, fmt.Errorf("create user: %w", err)
	}

	posts := make([]models.Post, numPosts)
	for i := range posts {
		posts[i] = models.Post{UserID: user.ID, Text: postText}
	}
	if err := tx.Create(&posts).Error; err != nil {
		tx.Rollback()
		return Result{}, fmt.Errorf("create posts: %w", err)
	}

	var postIDs []uint
	if err := tx.Model(&models.Post{}).Pluck("id", &postIDs).Error; err != nil {
		tx.Rollback()
		return Result{}, fmt.Errorf("list posts: %w", err)
	}

	likes := make([]models.Like, numLikes)
	for i := range likes {
		likes[i] = models.Like{UserID: user.ID, PostID: postIDs[b.Rand.Intn(len(postIDs))]}
	}
	if err := tx.Create(&likes).Error; err != nil {
		tx.Rollback()
		return Result{}, fmt.Errorf("create likes: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return Result{}, fmt.Errorf("commit: %w", err)
	}
	return Result{Username: user.Username, Posts: numPosts, Likes: numLikes}, nil
}
