package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/controllers"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/permissions"
)

func SetupUserRoutes(api *gin.RouterGroup, userController *controllers.UserController) {
	users := api.Group("/users")
	{
		// Accounts are created through /register; the collection itself only reads.
		readOnly := users.Group("", middleware.Require(permissions.ReadOnly{}))
		readOnly.GET("", userController.ListUsers)
		readOnly.GET("/:id", userController.GetUser)
		readOnly.POST("", middleware.Deny)
		readOnly.PUT("/:id", middleware.Deny)
		readOnly.PATCH("/:id", middleware.Deny)

		users.DELETE("/:id", middleware.Require(permissions.IsAdminUser{}), userController.DeleteUser)
	}

	api.GET("/activity", middleware.Require(permissions.IsAuthenticated{}), userController.Activity)
}
