package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/controllers"
)

func SetupValidationRoutes(public *gin.RouterGroup, validationController *controllers.ValidationController) {
	validate := public.Group("/validate")
	{
		validate.GET("/username/:username", validationController.ValidateUsername)
		validate.GET("/email/:email", validationController.ValidateEmail)
	}
}
