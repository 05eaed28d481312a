package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// List writes a collection together with its length.
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

// Paged is List plus the links to the neighbouring pages.
func Paged(c *gin.Context, data any, count int, pagination any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "pagination": pagination, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, msg)
}

func NotFound(c *gin.Context, msg string) {
	fail(c, http.StatusNotFound, msg)
}

// Error maps err onto the failure envelope. Internal errors are logged and
// reported without their cause.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logrus.WithError(err).
			WithField("path", c.FullPath()).
			WithField("method", c.Request.Method).
			Error("request failed")
		fail(c, kind.Status(), "server error")
		return
	}
	fail(c, kind.Status(), err.Error())
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
