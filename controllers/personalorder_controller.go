package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type PersonalOrderController struct {
	Service *services.PersonalOrderService
}

func NewPersonalOrderController(s *services.PersonalOrderService) *PersonalOrderController {
	return &PersonalOrderController{Service: s}
}

// GET /personalorders
func (ctl *PersonalOrderController) List(c *gin.Context) {
	page := pageOf(c)
	orders, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, orders, len(orders), page.Links())
}

// GET /foodtrucks/:id/personalorders
func (ctl *PersonalOrderController) ListByTruck(c *gin.Context) {
	orders, err := ctl.Service.ListByTruck(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, orders, len(orders))
}

// GET /users/:id/personalorders
func (ctl *PersonalOrderController) ListByUser(c *gin.Context) {
	orders, err := ctl.Service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, orders, len(orders))
}

// GET /personalorders/:id
func (ctl *PersonalOrderController) Get(c *gin.Context) {
	o, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /foodtrucks/:id/personalorders
func (ctl *PersonalOrderController) Create(c *gin.Context) {
	o, err := ctl.Service.Create(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// DELETE /personalorders/:id
func (ctl *PersonalOrderController) Delete(c *gin.Context) {
	o, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /personalorderitems
func (ctl *PersonalOrderController) ListAllItems(c *gin.Context) {
	page := pageOf(c)
	items, err := ctl.Service.ListAllItems(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, items, len(items), page.Links())
}

// GET /personalorders/:id/items
func (ctl *PersonalOrderController) ListItems(c *gin.Context) {
	items, err := ctl.Service.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, items, len(items))
}

// GET /personalorderitems/:id
func (ctl *PersonalOrderController) GetItem(c *gin.Context) {
	it, err := ctl.Service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, it)
}

// POST /personalorders/:id/items
func (ctl *PersonalOrderController) AddItem(c *gin.Context) {
	var req services.AddItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := ctl.Service.AddItem(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, it)
}

// DELETE /personalorderitems/:id
func (ctl *PersonalOrderController) DeleteItem(c *gin.Context) {
	it, err := ctl.Service.DeleteItem(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, it)
}
