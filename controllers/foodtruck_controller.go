package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type FoodTruckController struct {
	Service *services.FoodTruckService
}

func NewFoodTruckController(s *services.FoodTruckService) *FoodTruckController {
	return &FoodTruckController{Service: s}
}

// GET /foodtrucks
func (ctl *FoodTruckController) List(c *gin.Context) {
	page := pageOf(c)
	trucks, err := ctl.Service.List(c.Request.Context(), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, trucks, len(trucks), page.Links())
}

// GET /foodtrucks/:id
func (ctl *FoodTruckController) Get(c *gin.Context) {
	ft, err := ctl.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ft)
}

// POST /foodtrucks
func (ctl *FoodTruckController) Create(c *gin.Context) {
	var req services.CreateFoodTruckIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ft, err := ctl.Service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ft)
}

// PUT /foodtrucks/:id
func (ctl *FoodTruckController) Update(c *gin.Context) {
	var req services.UpdateFoodTruckIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ft, err := ctl.Service.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ft)
}

// DELETE /foodtrucks/:id
func (ctl *FoodTruckController) Delete(c *gin.Context) {
	ft, err := ctl.Service.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ft)
}

// PUT /foodtrucks/:id/photo
func (ctl *FoodTruckController) UploadPhoto(c *gin.Context) {
	ft, err := ctl.Service.UploadPhoto(c.Request.Context(), principal(c), c.Param("id"), formFile(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ft)
}

// GET /foodtrucks/radius/:lat/:lng/:distance
func (ctl *FoodTruckController) InRadius(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Param("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Param("lng"), 64)
	dist, errDist := strconv.ParseFloat(c.Param("distance"), 64)
	if errLat != nil || errLng != nil || errDist != nil {
		resp.BadRequest(c, "lat, lng and distance must be numbers")
		return
	}
	trucks, err := ctl.Service.InRadius(c.Request.Context(), lat, lng, dist)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.List(c, trucks, len(trucks))
}
