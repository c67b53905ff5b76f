package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB        *gorm.DB
	Paginator Paginator
}

func NewInteractionController(db *gorm.DB, paginator Paginator) *InteractionController {
	return &InteractionController{DB: db, Paginator: paginator}
}

// LikePost godoc
// @Summary Like a post
// @Description Every call records another like.
// @Tags interactions
// @Param id path integer true "Post ID"
// @Success 200
// @Failure 401 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts/{id}/like [post]
func (ic *InteractionController) LikePost(c *gin.Context) {
	ic.react(c, "like", func(userID, postID uint) interface{} {
		return &models.Like{UserID: userID, PostID: postID}
	})
}

// DislikePost godoc
// @Summary Dislike a post
// @Description Every call records another dislike.
// @Tags interactions
// @Param id path integer true "Post ID"
// @Success 200
// @Failure 401 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/posts/{id}/dislike [post]
func (ic *InteractionController) DislikePost(c *gin.Context) {
	ic.react(c, "dislike", func(userID, postID uint) interface{} {
		return &models.Dislike{UserID: userID, PostID: postID}
	})
}

func (ic *InteractionController) react(c *gin.Context, kind string, build func(userID, postID uint) interface{}) {
	user := utils.GetUser(c)
	if user == nil {
		deny(c)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := ic.DB.WithContext(c.Request.Context())
	var post models.Post
	err := db.Select("id").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c)
		return
	}
	if err != nil {
		respondInternal(c, err, "load post")
		return
	}

	if err := db.Create(build(user.ID, post.ID)).Error; err != nil {
		respondInternal(c, err, "create "+kind)
		return
	}

	logging.Ctx(c.Request.Context()).Debug().
		Uint("post_id", post.ID).
		Uint("user_id", user.ID).
		Str("kind", kind).
		Msg("post reaction recorded")
	c.Status(http.StatusOK)
}

// ListLikes godoc
// @Summary List likes
// @Description Newest first.
// @Tags interactions
// @Produce json
// @Param page query integer false "Page number"
// @Param page_size query integer false "Items per page"
// @Success 200 {object} PaginatedResponse{results=[]LikeItem}
// @Failure 401 {object} DetailResponse
// @Failure 404 {object} DetailResponse
// @Security BearerAuth
// @Router /user/likes [get]
func (ic *InteractionController) ListLikes(c *gin.Context) {
	q := ic.DB.WithContext(c.Request.Context()).Model(&models.Like{})

	var likes []models.Like
	pg, ok := ic.Paginator.Paginate(c, q, "created_at DESC, id DESC", &likes, "User")
	if !ok {
		return
	}

	results := make([]LikeItem, 0, len(likes))
	for i := range likes {
		results = append(results, newLikeItem(&likes[i]))
	}
	c.JSON(http.StatusOK, pg.response(results))
}
