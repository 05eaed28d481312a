package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
)

type MessageController struct {
	Service *services.MessageService
}

func NewMessageController(s *services.MessageService) *MessageController {
	return &MessageController{Service: s}
}

// GET /messages
func (ctl *MessageController) List(c *gin.Context) {
	page := pageOf(c)
	msgs, err := ctl.Service.List(c.Request.Context(), principal(c), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Paged(c, msgs, len(msgs), page.Links())
}

// GET /messages/:id
func (ctl *MessageController) Get(c *gin.Context) {
	m, err := ctl.Service.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /messages
func (ctl *MessageController) Send(c *gin.Context) {
	var req services.SendMessageIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := ctl.Service.Send(c.Request.Context(), principal(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}
