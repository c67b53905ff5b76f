package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/controllers"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/permissions"
)

func SetupPostRoutes(api *gin.RouterGroup, postController *controllers.PostController) {
	posts := api.Group("/posts")
	{
		collection := posts.Group("", middleware.Require(permissions.IsAuthenticatedOrReadOnly{}))
		collection.GET("", postController.ListPosts)
		collection.POST("", postController.CreatePost)
		collection.GET("/:id", postController.GetPost)

		// Ownership is checked against the loaded post.
		posts.PUT("/:id", postController.UpdatePost)
		posts.PATCH("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/upload-image", middleware.Require(permissions.IsAuthenticated{}), postController.UploadImage)
	}
}
