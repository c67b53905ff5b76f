package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/storage"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB        *gorm.DB
	Paginator Paginator
	Media     storage.MediaStore
}

func NewUserController(db *gorm.DB, paginator Paginator, media storage.MediaStore) *UserController {
	return &UserController{DB: db, Paginator: paginator, Media: media}
}

// userFilters maps query parameters to case-insensitive substring filters.
var userFilters = []struct {
	param  string
	column string
}{
	{"username", "username"},
	{"first_name", "first_name"},
	{"last_name", "last_name"},
}

// ListUsers godoc
// @Summary List users
// @Description Filters are case-insensitive substring matches and are combined with AND.
// @Tags users
// @Produce json
// @Param username query string false "Filter by username (ex. ?username=user1)"
// @Param first_name query string false "Filter by first_name (ex. ?first_name=Brad)"
// @Param last_name query string false "Filter by last_name (ex. ?last_name=Pitt)"
// @Param page query integer false "Page number"
// @Param page_size query integer false "Items per page"
// @Success 200 {object} PaginatedResponse{results=[]UserListItem}
// @Failure 404 {object} DetailResponse
// @Router /user/users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	q := uc.DB.WithContext(c.Request.Context()).Model(&models.User{})
	for _, f := range userFilters {
		if v := strings.TrimSpace(c.Query(f.param)); v != "" {
			q = q.Where("LOWER("+f.column+") LIKE ? ESCAPE '\\'", containsPattern(v))
		}
	}

	var users []models.User
	pg, ok := uc.Paginator.Paginate(c, q, models.UserOrdering, &users)
	if !ok {
		return
	}

	results := make([]UserListItem, 0, len(users))
	for i := range users {
		results = append(results, newUserListItem(&users[i]))
	}
	c.JSON(http.StatusOK, pg.response(results))
}

// GetUser godoc
// @Summary Retrieve a user
// @Tags users
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} UserDetail
// @Failure 404 {object} DetailResponse
// @Router /user/users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var user models.User
	err := uc.DB.WithContext(c.Request.Context()).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c)
		return
	}
	if err != nil {
		respondInternal(c, err, "load user")
		return
	}
	c.JSON(http.StatusOK, newUserDetail(&user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Staff only. Removes the user's posts, likes, dislikes and refresh tokens.
// @Tags users
// @Param id path integer true "User ID"
// @Success 204
// @Failure 401 {object} DetailResponse
// @Failure 403 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var user models.User
	if err := uc.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
			return
		}
		respondInternal(c, err, "load user")
		return
	}

	var mediaKeys []string
	if err := uc.DB.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ? AND media_image IS NOT NULL", user.ID).
		Pluck("media_image", &mediaKeys).Error; err != nil {
		respondInternal(c, err, "list user media")
		return
	}

	tx := uc.DB.WithContext(ctx).Begin()
	postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", user.ID)
	steps := []struct {
		what string
		run  func() error
	}{
		{"likes on user posts", func() error { return tx.Where("post_id IN (?)", postIDs).Delete(&models.Like{}).Error }},
		{"dislikes on user posts", func() error { return tx.Where("post_id IN (?)", postIDs).Delete(&models.Dislike{}).Error }},
		{"user likes", func() error { return tx.Where("user_id = ?", user.ID).Delete(&models.Like{}).Error }},
		{"user dislikes", func() error { return tx.Where("user_id = ?", user.ID).Delete(&models.Dislike{}).Error }},
		{"user posts", func() error { return tx.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error }},
		{"refresh tokens", func() error { return tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error }},
		{"user", func() error { return tx.Delete(&user).Error }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			tx.Rollback()
			respondInternal(c, err, "delete "+step.what)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		respondInternal(c, err, "commit user delete")
		return
	}

	removeMedia(c, uc.Media, mediaKeys...)
	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user deleted")
	c.Status(http.StatusNoContent)
}

// Activity godoc
// @Summary Last login and last request of the current user
// @Tags users
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} DetailResponse
// @Security BearerAuth
// @Router /user/activity [get]
func (uc *UserController) Activity(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		deny(c)
		return
	}

	c.JSON(http.StatusOK, map[string]*time.Time{
		user.Username + "'s last login":   user.LastLogin,
		user.Username + "'s last request": user.LastActivity,
	})
}

// removeMedia deletes stored objects after the rows referencing them are
// gone. Failures leave orphaned objects and are only logged.
func removeMedia(c *gin.Context, media storage.MediaStore, keys ...string) {
	if media == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := media.Delete(c.Request.Context(), key); err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Str("key", key).Msg("delete media object")
		}
	}
}
