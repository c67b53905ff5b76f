package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/permissions"
	"github.com/snap-point/social-api/storage"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

const mediaKeyPrefix = "media/uploads/users/posts/"

// imageTypes lists accepted upload content types and the extension used when
// the uploaded file name has none.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type PostController struct {
	DB           *gorm.DB
	Paginator    Paginator
	Media        storage.MediaStore
	MaxImageSize int64
}

type CreatePostRequest struct {
	Text string `json:"text" form:"text" binding:"required,max=255"`
}

type PatchPostRequest struct {
	Text *string `json:"text" form:"text" binding:"omitempty,min=1,max=255"`
}

func NewPostController(db *gorm.DB, paginator Paginator, media storage.MediaStore, maxImageSize int64) *PostController {
	return &PostController{DB: db, Paginator: paginator, Media: media, MaxImageSize: maxImageSize}
}

// loadPost fetches the post named by the id path parameter with its owner.
// It writes 404 or 500 itself.
func (pc *PostController) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	var post models.Post
	err := pc.DB.WithContext(c.Request.Context()).Preload("User").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c)
		return nil, false
	}
	if err != nil {
		respondInternal(c, err, "load post")
		return nil, false
	}
	return &post, true
}

// checkObject applies perm to post and denies the request when it fails.
func checkObject(c *gin.Context, perm permissions.Permission, post *models.Post) bool {
	if !perm.HasObjectPermission(c.Request.Method, utils.GetUser(c), post.UserID) {
		deny(c)
		return false
	}
	return true
}

// ListPosts godoc
// @Summary List posts
// @Description Newest first. The username filter matches the author's username case-insensitively.
// @Tags posts
// @Produce json
// @Param username query string false "Filter by author username (ex. ?username=user1)"
// @Param page query integer false "Page number"
// @Param page_size query integer false "Items per page"
// @Success 200 {object} PaginatedResponse{results=[]PostListItem}
// @Failure 404 {object} DetailResponse
// @Router /user/posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	db := pc.DB.WithContext(c.Request.Context())
	q := db.Model(&models.Post{})
	if username := strings.TrimSpace(c.Query("username")); username != "" {
		q = q.Where("user_id IN (?)", db.Model(&models.User{}).
			Select("id").
			Where("LOWER(username) LIKE ? ESCAPE '\\'", containsPattern(username)))
	}

	var posts []models.Post
	pg, ok := pc.Paginator.Paginate(c, q, models.PostOrdering, &posts, "User")
	if !ok {
		return
	}

	results := make([]PostListItem, 0, len(posts))
	for i := range posts {
		results = append(results, newPostListItem(&posts[i], pc.Media))
	}
	c.JSON(http.StatusOK, pg.response(results))
}

// GetPost godoc
// @Summary Retrieve a post
// @Tags posts
// @Produce json
// @Param id path integer true "Post ID"
// @Success 200 {object} PostDetail
// @Failure 404 {object} DetailResponse
// @Router /user/posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}

	detail := PostDetail{PostListItem: newPostListItem(post, pc.Media)}
	db := pc.DB.WithContext(c.Request.Context())
	if err := db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&detail.LikesCount).Error; err != nil {
		respondInternal(c, err, "count likes")
		return
	}
	if err := db.Model(&models.Dislike{}).Where("post_id = ?", post.ID).Count(&detail.DislikesCount).Error; err != nil {
		respondInternal(c, err, "count dislikes")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreatePost godoc
// @Summary Create a post
// @Description The post always belongs to the requesting user.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post"
// @Success 201 {object} PostListItem
// @Failure 400 {object} FieldErrorsResponse
// @Failure 401 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		deny(c)
		return
	}

	var req CreatePostRequest
	if err := bindBody(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	post := models.Post{UserID: user.ID, Text: req.Text}
	if err := pc.DB.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		respondInternal(c, err, "create post")
		return
	}
	post.User = *user

	logging.Ctx(c.Request.Context()).Info().Uint("post_id", post.ID).Uint("user_id", user.ID).Msg("post created")
	c.JSON(http.StatusCreated, newPostListItem(&post, pc.Media))
}

// UpdatePost godoc
// @Summary Update a post
// @Description PUT replaces the text, PATCH changes only the fields sent. Owner only.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path integer true "Post ID"
// @Param post body CreatePostRequest true "Post"
// @Success 200 {object} PostListItem
// @Failure 400 {object} FieldErrorsResponse
// @Failure 401 {object} DetailResponse
// @Failure 403 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts/{id} [put]
// @Router /user/posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	if !checkObject(c, permissions.IsCreatorOrReadOnly{}, post) {
		return
	}

	var text *string
	if c.Request.Method == http.MethodPatch {
		var req PatchPostRequest
		if err := bindBody(c, &req); err != nil {
			respondBindError(c, err)
			return
		}
		text = req.Text
	} else {
		var req CreatePostRequest
		if err := bindBody(c, &req); err != nil {
			respondBindError(c, err)
			return
		}
		text = &req.Text
	}

	if text != nil {
		post.Text = *text
		err := pc.DB.WithContext(c.Request.Context()).Model(&models.Post{}).Where("id = ?", post.ID).Update("text", post.Text).Error
		if err != nil {
			respondInternal(c, err, "update post")
			return
		}
	}
	c.JSON(http.StatusOK, newPostListItem(post, pc.Media))
}

// DeletePost godoc
// @Summary Delete a post
// @Description Owner or staff. Removes its likes, dislikes and stored image.
// @Tags posts
// @Param id path integer true "Post ID"
// @Success 204
// @Failure 401 {object} DetailResponse
// @Failure 403 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	if !checkObject(c, permissions.IsCreatorOrIsAdmin{}, post) {
		return
	}

	tx := pc.DB.WithContext(c.Request.Context()).Begin()
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		respondInternal(c, err, "delete post likes")
		return
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Dislike{}).Error; err != nil {
		tx.Rollback()
		respondInternal(c, err, "delete post dislikes")
		return
	}
	if err := tx.Delete(&models.Post{}, post.ID).Error; err != nil {
		tx.Rollback()
		respondInternal(c, err, "delete post")
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondInternal(c, err, "commit post delete")
		return
	}

	if post.MediaImage != nil {
		removeMedia(c, pc.Media, *post.MediaImage)
	}
	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Attach an image to a post
// @Description Owner only. Replaces any previous image.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param id path integer true "Post ID"
// @Param media_image formData file true "Image file"
// @Success 200 {object} MediaImageResponse
// @Failure 400 {object} FieldErrorsResponse
// @Failure 401 {object} DetailResponse
// @Failure 403 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Failure 503 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts/{id}/upload-image [post]
func (pc *PostController) UploadImage(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	if !checkObject(c, permissions.IsCreatorOrReadOnly{}, post) {
		return
	}
	if pc.Media == nil {
		respondDetail(c, http.StatusServiceUnavailable, "Media storage is not configured.")
		return
	}

	header, err := c.FormFile("media_image")
	if err != nil {
		respondFieldError(c, "media_image", "No file was submitted.")
		return
	}
	if header.Size == 0 {
		respondFieldError(c, "media_image", "The submitted file is empty.")
		return
	}
	if pc.MaxImageSize > 0 && header.Size > pc.MaxImageSize {
		respondFieldError(c, "media_image",
			fmt.Sprintf("Ensure this file is no larger than %d bytes.", pc.MaxImageSize))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondInternal(c, err, "open upload")
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		respondInternal(c, err, "read upload")
		return
	}
	sniff = sniff[:n]

	contentType := http.DetectContentType(sniff)
	defaultExt, allowed := imageTypes[contentType]
	if !allowed {
		respondFieldError(c, "media_image",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = defaultExt
	}

	key := mediaKey(&post.User, ext)
	body := io.MultiReader(bytes.NewReader(sniff), file)
	ctx := c.Request.Context()
	if err := pc.Media.Put(ctx, key, body, header.Size, contentType); err != nil {
		respondInternal(c, err, "store upload")
		return
	}

	var previous string
	if post.MediaImage != nil {
		previous = *post.MediaImage
	}
	if err := pc.DB.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Update("media_image", key).Error; err != nil {
		removeMedia(c, pc.Media, key)
		respondInternal(c, err, "save media image")
		return
	}
	if previous != key {
		removeMedia(c, pc.Media, previous)
	}

	logging.Ctx(ctx).Info().Uint("post_id", post.ID).Str("key", key).Int64("size", header.Size).Msg("post image stored")
	c.JSON(http.StatusOK, MediaImageResponse{ID: post.ID, MediaImage: pc.Media.URL(key)})
}

// mediaKey builds the object key for an image owned by owner.
func mediaKey(owner *models.User, ext string) string {
	return mediaKeyPrefix + utils.Slugify(owner.String()) + "-" + uuid.NewString() + ext
}
