package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/models"
	"gorm.io/gorm"
)

// dateLayout also accepts single-digit months and days.
const dateLayout = "2006-1-2"

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// LikesCountByDate godoc
// @Summary Count likes in a period
// @Description date_from is exclusive, date_to includes the whole day. Both are optional.
// @Tags analytics
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {string} string "Number of likes in period from 2024-01-01 to 2024-01-31: 42"
// @Failure 400 {object} FieldErrorsResponse
// @Failure 401 {object} DetailResponse
// @Security BearerAuth
// @Router /user/analytics/likes [get]
func (ac *AnalyticsController) LikesCountByDate(c *gin.Context) {
	q := ac.DB.WithContext(c.Request.Context()).Model(&models.Like{})
	fields := map[string][]string{}

	var fromStr, toStr string
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			fields["date_from"] = []string{invalidDateMsg}
		} else {
			fromStr = " from " + raw
			q = q.Where("created_at > ?", from.UTC())
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			fields["date_to"] = []string{invalidDateMsg}
		} else {
			toStr = " to " + raw
			q = q.Where("created_at <= ?", to.AddDate(0, 0, 1).UTC())
		}
	}
	if len(fields) > 0 {
		respondFieldErrors(c, fields)
		return
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		respondInternal(c, err, "count likes")
		return
	}
	c.JSON(http.StatusOK, fmt.Sprintf("Number of likes in period%s%s: %d", fromStr, toStr, count))
}

const invalidDateMsg = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
