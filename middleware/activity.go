package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

// TrackLastActivity stamps last_activity for the authenticated user once the
// handler has run. Errors are logged and never change the response.
func TrackLastActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		user := utils.GetUser(c)
		if user == nil {
			return
		}

		now := time.Now().UTC()
		err := db.WithContext(c.Request.Context()).
			Model(&models.User{}).
			Where("id = ?", user.ID).
			UpdateColumn("last_activity", now).Error
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Uint("user_id", user.ID).Msg("update last activity")
			return
		}
		user.LastActivity = &now
	}
}
