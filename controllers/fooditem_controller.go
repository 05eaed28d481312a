package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type FoodItemController struct {
	Service *services.FoodItemService
}

func NewFoodItemController(s *services.FoodItemService) *FoodItemController {
	return &FoodItemController{Service: s}
}

// GET /fooditems
func (ctl *FoodItemController) List(c *gin.Context) {
	page := pageOf(c)
	items, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, items, len(items), page.Links())
}

// GET /foodtrucks/:id/fooditems
func (ctl *FoodItemController) ListByTruck(c *gin.Context) {
	items, err := ctl.Service.ListByTruck(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, items, len(items))
}

// GET /fooditems/:id
func (ctl *FoodItemController) Get(c *gin.Context) {
	item, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /foodtrucks/:id/fooditems
func (ctl *FoodItemController) Create(c *gin.Context) {
	var req services.CreateFoodItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.Create(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// PUT /fooditems/:id
func (ctl *FoodItemController) Update(c *gin.Context) {
	var req services.UpdateFoodItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /fooditems/:id
func (ctl *FoodItemController) Delete(c *gin.Context) {
	item, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// PUT /fooditems/:id/photo
func (ctl *FoodItemController) UploadPhoto(c *gin.Context) {
	item, err := ctl.Service.UploadPhoto(c.Request.Context(), principal(c), c.Param("id"), formFile(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}
