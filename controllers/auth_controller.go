package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Register(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req services.LoginIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Login(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Service.Me(c.Request.Context(), principal(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// PUT /auth/updatedetails
func (a *AuthController) UpdateDetails(c *gin.Context) {
	var req services.UpdateDetailsIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Service.UpdateDetails(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// PUT /auth/updatePassword
func (a *AuthController) UpdatePassword(c *gin.Context) {
	var req services.UpdatePasswordIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.UpdatePassword(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// PUT /auth/updateLocation
func (a *AuthController) UpdateLocation(c *gin.Context) {
	var req services.UpdateLocationIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Service.UpdateLocation(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}
