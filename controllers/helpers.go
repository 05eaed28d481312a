package controllers

import (
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/repository"
	"github.com/bigbadbobbo/foodtruck-api/services"
	"github.com/bigbadbobbo/foodtruck-api/utils"
)

func principal(c *gin.Context) services.Principal {
	return services.Principal{ID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

// pageOf reads ?page=&limit=.
func pageOf(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return repository.NewPage(page, limit)
}

// formFile returns the uploaded "file" part, or nil when none was sent.
func formFile(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return fh
}
