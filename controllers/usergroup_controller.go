package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type UserGroupController struct {
	Service *services.UserGroupService
}

func NewUserGroupController(s *services.UserGroupService) *UserGroupController {
	return &UserGroupController{Service: s}
}

// GET /usergroups
func (ctl *UserGroupController) List(c *gin.Context) {
	page := pageOf(c)
	groups, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, groups, len(groups), page.Links())
}

// GET /users/:id/usergroups
func (ctl *UserGroupController) ListByOwner(c *gin.Context) {
	groups, err := ctl.Service.ListOwnedBy(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, groups, len(groups))
}

// GET /usergroups/:id
func (ctl *UserGroupController) Get(c *gin.Context) {
	g, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, g)
}

// POST /usergroups
func (ctl *UserGroupController) Create(c *gin.Context) {
	var req services.CreateUserGroupIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	g, err := ctl.Service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, g)
}

// PUT /usergroups/:id
func (ctl *UserGroupController) Update(c *gin.Context) {
	var req services.UpdateUserGroupIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	g, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, g)
}

// DELETE /usergroups/:id
func (ctl *UserGroupController) Delete(c *gin.Context) {
	g, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, g)
}

// PUT /usergroups/:id/photo
func (ctl *UserGroupController) UploadPhoto(c *gin.Context) {
	g, err := ctl.Service.UploadPhoto(c.Request.Context(), principal(c), c.Param("id"), formFile(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, g)
}
