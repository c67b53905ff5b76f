package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/models"
	"gorm.io/gorm"
)

type ValidationController struct {
	DB *gorm.DB
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{DB: db}
}

// ValidateUsername godoc
// @Summary Check whether a username is taken
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} ExistsResponse
// @Router /user/validate/username/{username} [get]
func (vc *ValidationController) ValidateUsername(c *gin.Context) {
	vc.exists(c, "username", c.Param("username"))
}

// ValidateEmail godoc
// @Summary Check whether an email is registered
// @Tags users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} ExistsResponse
// @Router /user/validate/email/{email} [get]
func (vc *ValidationController) ValidateEmail(c *gin.Context) {
	vc.exists(c, "email", c.Param("email"))
}

func (vc *ValidationController) exists(c *gin.Context, column, value string) {
	var count int64
	err := vc.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Where(column+" = ?", value).
		Count(&count).Error
	if err != nil {
		respondInternal(c, err, "check "+column)
		return
	}
	c.JSON(http.StatusOK, ExistsResponse{Exists: count > 0})
}
