package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

// RatingController serves truck, user and group ratings. The nested routes
// bind the subject kind when they are registered.
type RatingController struct {
	Service *services.RatingService
}

func NewRatingController(s *services.RatingService) *RatingController {
	return &RatingController{Service: s}
}

// GET /ratings?kind=
func (ctl *RatingController) List(c *gin.Context) {
	page := pageOf(c)
	ratings, err := ctl.Service.List(c.Request.Context(), c.Query("kind"), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, ratings, len(ratings), page.Links())
}

// GET /ratings/:id
func (ctl *RatingController) Get(c *gin.Context) {
	r, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// ListFor serves GET /{foodtrucks,users,usergroups}/:id/ratings.
func (ctl *RatingController) ListFor(kind entity.RatingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ratings, err := ctl.Service.ListForSubject(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.List(c, ratings, len(ratings))
	}
}

// CreateFor serves POST /{foodtrucks,users,usergroups}/:id/ratings.
func (ctl *RatingController) CreateFor(kind entity.RatingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RatingIn
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		r, err := ctl.Service.Create(c.Request.Context(), principal(c), kind, c.Param("id"), req)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.Created(c, r)
	}
}

// PUT /ratings/:id
func (ctl *RatingController) Update(c *gin.Context) {
	var req services.RatingIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// DELETE /ratings/:id
func (ctl *RatingController) Delete(c *gin.Context) {
	r, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}
