package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type GroupOrderController struct {
	Service *services.GroupOrderService
}

func NewGroupOrderController(s *services.GroupOrderService) *GroupOrderController {
	return &GroupOrderController{Service: s}
}

// GET /grouporders
func (ctl *GroupOrderController) List(c *gin.Context) {
	page := pageOf(c)
	orders, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, orders, len(orders), page.Links())
}

// GET /grouporders/:id
func (ctl *GroupOrderController) Get(c *gin.Context) {
	o, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /grouporders/:id/memberorders
func (ctl *GroupOrderController) ListMemberOrders(c *gin.Context) {
	mos, err := ctl.Service.ListMemberOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, mos, len(mos))
}

// POST /grouporders
func (ctl *GroupOrderController) Create(c *gin.Context) {
	var req services.CreateGroupOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := ctl.Service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// PUT /grouporders/:id
func (ctl *GroupOrderController) Update(c *gin.Context) {
	var req services.UpdateGroupOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// DELETE /grouporders/:id
func (ctl *GroupOrderController) Delete(c *gin.Context) {
	o, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

type GroupMemberOrderController struct {
	Service *services.GroupMemberOrderService
}

func NewGroupMemberOrderController(s *services.GroupMemberOrderService) *GroupMemberOrderController {
	return &GroupMemberOrderController{Service: s}
}

// GET /groupmemberorders
func (ctl *GroupMemberOrderController) List(c *gin.Context) {
	page := pageOf(c)
	mos, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, mos, len(mos), page.Links())
}

// GET /groupmemberorders/:id
func (ctl *GroupMemberOrderController) Get(c *gin.Context) {
	mo, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, mo)
}

// POST /groupmemberorders
func (ctl *GroupMemberOrderController) Create(c *gin.Context) {
	var req services.CreateMemberOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	mo, err := ctl.Service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, mo)
}

// PUT /groupmemberorders/:id
func (ctl *GroupMemberOrderController) Update(c *gin.Context) {
	var req services.UpdateMemberOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	mo, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, mo)
}

// DELETE /groupmemberorders/:id
func (ctl *GroupMemberOrderController) Delete(c *gin.Context) {
	mo, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, mo)
}
