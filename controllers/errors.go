package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/utils"
)

const (
	msgNotFound    = "Not found."
	msgServerError = "A server error occurred."
)

func respondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, DetailResponse{Detail: detail})
}

func respondNotFound(c *gin.Context) {
	respondDetail(c, http.StatusNotFound, msgNotFound)
}

// respondInternal logs err with the request's logger and hides it from the
// client.
func respondInternal(c *gin.Context, err error, msg string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	_ = c.Error(err)
	respondDetail(c, http.StatusInternalServerError, msgServerError)
}

func respondFieldErrors(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, FieldErrorsResponse(fields))
}

func respondFieldError(c *gin.Context, field, msg string) {
	respondFieldErrors(c, map[string][]string{field: {msg}})
}

// respondBindError reports validation failures per field and anything else
// as a parse error.
func respondBindError(c *gin.Context, err error) {
	if fields := utils.FieldErrors(err); fields != nil {
		respondFieldErrors(c, fields)
		return
	}
	respondDetail(c, http.StatusBadRequest, "Malformed request body: "+err.Error())
}

// bindBody binds JSON or form input. An empty body still runs validation so
// required fields are reported.
func bindBody(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// deny writes 401 for anonymous callers and 403 for authenticated ones.
func deny(c *gin.Context) {
	middleware.Deny(c)
}

// parseID reads a positive integer path parameter. Anything else is a 404,
// matching how unknown ids are reported.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondNotFound(c)
		return 0, false
	}
	return uint(id), true
}
