package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

// UserController is mounted behind the admin role gate.
type UserController struct {
	Service *services.UserService
}

func NewUserController(s *services.UserService) *UserController {
	return &UserController{Service: s}
}

// GET /users
func (ctl *UserController) List(c *gin.Context) {
	page := pageOf(c)
	users, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, users, len(users), page.Links())
}

// GET /users/:id
func (ctl *UserController) Get(c *gin.Context) {
	u, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// POST /users
func (ctl *UserController) Create(c *gin.Context) {
	var req services.CreateUserIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// PUT /users/:id
func (ctl *UserController) Update(c *gin.Context) {
	var req services.UpdateUserIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ctl.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// DELETE /users/:id
func (ctl *UserController) Delete(c *gin.Context) {
	u, err := ctl.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}
