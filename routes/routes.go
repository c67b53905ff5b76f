package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/snap-point/social-api/blacklist"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/controllers"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/permissions"
	"github.com/snap-point/social-api/storage"
	"github.com/snap-point/social-api/utils"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/snap-point/social-api/docs"
)

// Dependencies are the shared services handed to the controllers.
type Dependencies struct {
	DB        *gorm.DB
	Config    *config.Config
	Tokens    *utils.TokenManager
	Blacklist blacklist.Blacklist
	// Media is nil when object storage is not configured.
	Media storage.MediaStore
	// TokenLimiter throttles the public token endpoints. Nil disables it.
	TokenLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	r.Use(middleware.RequestLogger(), middleware.Metrics())

	paginator := controllers.NewPaginator(deps.Config.API)
	authController := controllers.NewAuthController(deps.DB, deps.Tokens, deps.Blacklist, deps.Config.Auth)
	userController := controllers.NewUserController(deps.DB, paginator, deps.Media)
	postController := controllers.NewPostController(deps.DB, paginator, deps.Media, deps.Config.Storage.MaxImageSize)
	interactionController := controllers.NewInteractionController(deps.DB, paginator)
	analyticsController := controllers.NewAnalyticsController(deps.DB)
	validationController := controllers.NewValidationController(deps.DB)

	// Public routes
	public := r.Group("/api/user")
	{
		tokens := public.Group("", deps.TokenLimiter.Handler())
		tokens.POST("/register", authController.Register)
		tokens.POST("/token", authController.ObtainToken)
		tokens.POST("/token/refresh", authController.RefreshToken)
		tokens.POST("/token/verify", authController.VerifyToken)

		SetupValidationRoutes(public, validationController)
	}

	// Routes that resolve the bearer token, when one is sent
	api := r.Group("/api/user")
	api.Use(middleware.Authenticate(deps.DB, deps.Tokens), middleware.TrackLastActivity(deps.DB))
	{
		authed := api.Group("", middleware.Require(permissions.IsAuthenticated{}))
		authed.POST("/logout", authController.Logout)
		authed.GET("/me", authController.GetProfile)
		authed.PUT("/me", authController.UpdateProfile)
		authed.PATCH("/me", authController.UpdateProfile)

		SetupUserRoutes(api, userController)
		SetupPostRoutes(api, postController)
		SetupInteractionRoutes(api, interactionController, analyticsController)
	}

	r.GET("/healthz", healthz(deps.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)))
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
