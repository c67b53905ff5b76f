package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/blacklist"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

const (
	msgNoActiveAccount = "No active account found with the given credentials"
	msgTokenInvalid    = "Token is invalid or expired"
	msgTokenBlacklist  = "Token is blacklisted"
	msgUsernameTaken   = "A user with that username already exists."
	codeTokenNotValid  = "token_not_valid"
)

type AuthController struct {
	DB        *gorm.DB
	Tokens    *utils.TokenManager
	Blacklist blacklist.Blacklist
	Config    config.AuthConfig
}

func NewAuthController(db *gorm.DB, tokens *utils.TokenManager, bl blacklist.Blacklist, cfg config.AuthConfig) *AuthController {
	return &AuthController{DB: db, Tokens: tokens, Blacklist: bl, Config: cfg}
}

type RegisterRequest struct {
	Username  string `json:"username" form:"username" binding:"required,max=60,username"`
	Email     string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=60"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=60"`
	Bio       string `json:"bio" form:"bio"`
}

// ProfilePatchRequest is the partial form of RegisterRequest.
type ProfilePatchRequest struct {
	Username  *string `json:"username" form:"username" binding:"omitempty,required,max=60,username"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Password  *string `json:"password" form:"password" binding:"omitempty,min=8,max=128"`
	FirstName *string `json:"first_name" form:"first_name" binding:"omitempty,min=1,max=60"`
	LastName  *string `json:"last_name" form:"last_name" binding:"omitempty,min=1,max=60"`
	Bio       *string `json:"bio" form:"bio"`
}

type TokenObtainRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" binding:"required"`
}

type TokenVerifyRequest struct {
	Token string `json:"token" form:"token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
}

type TokenPairResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type TokenRefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func tokenError(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.JSON(http.StatusUnauthorized, DetailResponse{Detail: detail, Code: codeTokenNotValid})
}

// usernameTaken reports whether another account already uses username.
func (ac *AuthController) usernameTaken(c *gin.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := ac.DB.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

// issueRefresh signs a refresh token and records it as outstanding.
func (ac *AuthController) issueRefresh(c *gin.Context, userID uint) (string, error) {
	signed, claims, err := ac.Tokens.NewRefreshToken(userID)
	if err != nil {
		return "", err
	}
	record := models.RefreshToken{
		UserID:         userID,
		JTI:            claims.ID,
		Token:          signed,
		ExpirationDate: claims.ExpiresAt.Time.UTC(),
	}
	if err := ac.DB.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		return "", err
	}
	return signed, nil
}

// isBlacklisted treats tokens unknown to the store as not blacklisted.
func (ac *AuthController) isBlacklisted(c *gin.Context, jti string) (bool, error) {
	ok, err := ac.Blacklist.IsBlacklisted(c.Request.Context(), jti)
	if errors.Is(err, blacklist.ErrNotOutstanding) {
		return false, nil
	}
	return ok, err
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} FieldErrorsResponse
// @Router /user/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterRequest
	if err := bindBody(c, &input); err != nil {
		respondBindError(c, err)
		return
	}

	taken, err := ac.usernameTaken(c, input.Username, 0)
	if err != nil {
		respondInternal(c, err, "check username")
		return
	}
	if taken {
		respondFieldError(c, "username", msgUsernameTaken)
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		respondInternal(c, err, "hash password")
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  hashed,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		IsActive:  true,
	}
	if err := ac.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondFieldError(c, "username", msgUsernameTaken)
			return
		}
		respondInternal(c, err, "create user")
		return
	}

	logging.Ctx(c.Request.Context()).Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	c.JSON(http.StatusCreated, newUserResponse(&user))
}

// ObtainToken godoc
// @Summary Obtain an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body TokenObtainRequest true "Credentials"
// @Success 200 {object} TokenPairResponse
// @Failure 401 {object} DetailResponse
// @Router /user/token [post]
func (ac *AuthController) ObtainToken(c *gin.Context) {
	var input TokenObtainRequest
	if err := bindBody(c, &input); err != nil {
		respondBindError(c, err)
		return
	}

	var user models.User
	err := ac.DB.WithContext(c.Request.Context()).Where("username = ?", input.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondInternal(c, err, "load user")
		return
	}
	if err != nil || !user.IsActive || !utils.CheckPassword(user.Password, input.Password) {
		respondDetail(c, http.StatusUnauthorized, msgNoActiveAccount)
		return
	}

	access, _, err := ac.Tokens.NewAccessToken(user.ID)
	if err != nil {
		respondInternal(c, err, "sign access token")
		return
	}
	refresh, err := ac.issueRefresh(c, user.ID)
	if err != nil {
		respondInternal(c, err, "issue refresh token")
		return
	}

	if ac.Config.UpdateLastLogin {
		err := ac.DB.WithContext(c.Request.Context()).
			Model(&models.User{}).
			Where("id = ?", user.ID).
			UpdateColumn("last_login", time.Now().UTC()).Error
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Uint("user_id", user.ID).Msg("update last login")
		}
	}

	c.JSON(http.StatusOK, TokenPairResponse{Refresh: refresh, Access: access})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Description With rotation enabled a new refresh token is returned and the old one is blacklisted.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body TokenRefreshRequest true "Refresh token"
// @Success 200 {object} TokenRefreshResponse
// @Failure 401 {object} DetailResponse
// @Router /user/token/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input TokenRefreshRequest
	if err := bindBody(c, &input); err != nil {
		respondBindError(c, err)
		return
	}

	claims, err := ac.Tokens.Parse(input.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		tokenError(c, msgTokenInvalid)
		return
	}

	blacklisted, err := ac.isBlacklisted(c, claims.ID)
	if err != nil {
		respondInternal(c, err, "check blacklist")
		return
	}
	if blacklisted {
		tokenError(c, msgTokenBlacklist)
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil || !user.IsActive {
		respondDetail(c, http.StatusUnauthorized, msgNoActiveAccount)
		return
	}

	access, _, err := ac.Tokens.NewAccessToken(user.ID)
	if err != nil {
		respondInternal(c, err, "sign access token")
		return
	}
	resp := TokenRefreshResponse{Access: access}

	if ac.Config.RotateRefreshTokens {
		err := ac.Blacklist.Blacklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time)
		switch {
		case errors.Is(err, blacklist.ErrBlacklisted):
			tokenError(c, msgTokenBlacklist)
			return
		case err != nil && !errors.Is(err, blacklist.ErrNotOutstanding):
			respondInternal(c, err, "blacklist rotated token")
			return
		}
		refresh, err := ac.issueRefresh(c, user.ID)
		if err != nil {
			respondInternal(c, err, "issue refresh token")
			return
		}
		resp.Refresh = refresh
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyToken godoc
// @Summary Check that a token is valid
// @Tags auth
// @Accept json
// @Produce json
// @Param token body TokenVerifyRequest true "Token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} DetailResponse
// @Router /user/token/verify [post]
func (ac *AuthController) VerifyToken(c *gin.Context) {
	var input TokenVerifyRequest
	if err := bindBody(c, &input); err != nil {
		respondBindError(c, err)
		return
	}

	claims, err := ac.Tokens.Parse(input.Token, "")
	if err != nil {
		tokenError(c, msgTokenInvalid)
		return
	}
	if claims.TokenType == utils.TokenTypeRefresh {
		blacklisted, err := ac.isBlacklisted(c, claims.ID)
		if err != nil {
			respondInternal(c, err, "check blacklist")
			return
		}
		if blacklisted {
			tokenError(c, msgTokenBlacklist)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{})
}

// Logout godoc
// @Summary Blacklist a refresh token
// @Tags auth
// @Accept json
// @Param token body LogoutRequest true "Refresh token to revoke"
// @Success 205
// @Failure 400
// @Security BearerAuth
// @Router /user/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	var input LogoutRequest
	if err := bindBody(c, &input); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	claims, err := ac.Tokens.Parse(input.RefreshToken, utils.TokenTypeRefresh)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := ac.Blacklist.Blacklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		if !errors.Is(err, blacklist.ErrBlacklisted) && !errors.Is(err, blacklist.ErrNotOutstanding) {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("blacklist refresh token")
		}
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusResetContent)
}

// GetProfile godoc
// @Summary Current user's account
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} DetailResponse
// @Security BearerAuth
// @Router /user/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		deny(c)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update the current user's account
// @Description PUT replaces every writable field, PATCH only the ones sent. A new password is hashed before storage.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} FieldErrorsResponse
// @Failure 401 {object} DetailResponse
// @Security BearerAuth
// @Router /user/me [put]
// @Router /user/me [patch]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		deny(c)
		return
	}

	var patch ProfilePatchRequest
	if c.Request.Method == http.MethodPatch {
		if err := bindBody(c, &patch); err != nil {
			respondBindError(c, err)
			return
		}
	} else {
		var input RegisterRequest
		if err := bindBody(c, &input); err != nil {
			respondBindError(c, err)
			return
		}
		patch = ProfilePatchRequest{
			Username:  &input.Username,
			Email:     &input.Email,
			Password:  &input.Password,
			FirstName: &input.FirstName,
			LastName:  &input.LastName,
			Bio:       &input.Bio,
		}
	}

	updates := map[string]interface{}{}
	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := ac.usernameTaken(c, *patch.Username, user.ID)
		if err != nil {
			respondInternal(c, err, "check username")
			return
		}
		if taken {
			respondFieldError(c, "username", msgUsernameTaken)
			return
		}
		updates["username"] = *patch.Username
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := utils.HashPassword(*patch.Password)
		if err != nil {
			respondInternal(c, err, "hash password")
			return
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		err := ac.DB.WithContext(c.Request.Context()).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondFieldError(c, "username", msgUsernameTaken)
			return
		}
		if err != nil {
			respondInternal(c, err, "update profile")
			return
		}
	}

	var fresh models.User
	if err := ac.DB.WithContext(c.Request.Context()).First(&fresh, user.ID).Error; err != nil {
		respondInternal(c, err, "reload profile")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(&fresh))
}
