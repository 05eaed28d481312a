package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type MembershipController struct {
	Service *services.MembershipService
}

func NewMembershipController(s *services.MembershipService) *MembershipController {
	return &MembershipController{Service: s}
}

// GET /memberships
func (ctl *MembershipController) List(c *gin.Context) {
	page := pageOf(c)
	ms, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, ms, len(ms), page.Links())
}

// GET /usergroups/:id/memberships
func (ctl *MembershipController) ListByGroup(c *gin.Context) {
	ms, err := ctl.Service.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, ms, len(ms))
}

// GET /users/:id/memberships
func (ctl *MembershipController) ListByUser(c *gin.Context) {
	ms, err := ctl.Service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, ms, len(ms))
}

// GET /memberships/:id
func (ctl *MembershipController) Get(c *gin.Context) {
	m, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /usergroups/:id/memberships
func (ctl *MembershipController) Join(c *gin.Context) {
	m, err := ctl.Service.Join(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /memberships/:id
func (ctl *MembershipController) Delete(c *gin.Context) {
	m, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}
