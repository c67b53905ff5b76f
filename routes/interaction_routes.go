package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/controllers"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/permissions"
)

func SetupInteractionRoutes(api *gin.RouterGroup, interactionController *controllers.InteractionController, analyticsController *controllers.AnalyticsController) {
	authed := api.Group("", middleware.Require(permissions.IsAuthenticated{}))
	{
		authed.POST("/posts/:id/like", interactionController.LikePost)
		authed.POST("/posts/:id/dislike", interactionController.DislikePost)
		authed.GET("/likes", interactionController.ListLikes)
		authed.GET("/analytics/likes", analyticsController.LikesCountByDate)
	}
}
