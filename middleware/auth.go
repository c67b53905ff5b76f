package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/permissions"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

const (
	bearerScheme        = "Bearer"
	wwwAuthenticate     = `Bearer realm="api"`
	notAuthenticatedMsg = "Authentication credentials were not provided."
	permissionDeniedMsg = "You do not have permission to perform this action."
)

func abortDetail(c *gin.Context, status int, detail, code string) {
	body := gin.H{"detail": detail}
	if code != "" {
		body["code"] = code
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", wwwAuthenticate)
	}
	c.AbortWithStatusJSON(status, body)
}

// Authenticate resolves a Bearer access token into the request user.
// Requests without an Authorization header, or with another scheme, continue
// anonymously. A Bearer header that does not carry a valid access token for
// an active user is rejected with 401.
func Authenticate(db *gorm.DB, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Fields(header)
		if len(parts) == 0 || parts[0] != bearerScheme {
			c.Next()
			return
		}
		if len(parts) != 2 {
			abortDetail(c, http.StatusUnauthorized,
				"Authorization header must contain two space-delimited values", "bad_authorization_header")
			return
		}

		claims, err := tokens.Parse(parts[1], utils.TokenTypeAccess)
		if err != nil {
			abortDetail(c, http.StatusUnauthorized, "Given token not valid for any token type", "token_not_valid")
			return
		}

		var user models.User
		err = db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortDetail(c, http.StatusUnauthorized, "User not found", "user_not_found")
			return
		}
		if err != nil {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("load authenticated user")
			abortDetail(c, http.StatusInternalServerError, "Internal server error.", "")
			return
		}
		if !user.IsActive {
			abortDetail(c, http.StatusUnauthorized, "User is inactive", "user_inactive")
			return
		}

		utils.SetUser(c, &user)
		c.Next()
	}
}

// Deny aborts with 401 for anonymous callers and 403 for everyone else.
func Deny(c *gin.Context) {
	if utils.GetUser(c) == nil {
		abortDetail(c, http.StatusUnauthorized, notAuthenticatedMsg, "")
		return
	}
	abortDetail(c, http.StatusForbidden, permissionDeniedMsg, "")
}

// Require checks collection-level permissions before the handler runs.
func Require(perms ...permissions.Permission) gin.HandlerFunc {
	all := permissions.All(perms)
	return func(c *gin.Context) {
		if !all.HasPermission(c.Request.Method, utils.GetUser(c)) {
			Deny(c)
			return
		}
		c.Next()
	}
}
