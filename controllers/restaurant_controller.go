package controllers

import (
	"dashboard/pkg/resp"
	"dashboard/repository"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RestaurantController struct {
	Svc *services.RestaurantService
	Log *zap.Logger
}

func NewRestaurantController(svc *services.RestaurantService, log *zap.Logger) *RestaurantController {
	return &RestaurantController{Svc: svc, Log: log}
}

// GET /admin/merchants?status=&category=&q=&page=&limit=
func (rc *RestaurantController) List(c *gin.Context) {
	items, page, limit, total, err := rc.Svc.List(services.RestaurantListReq{
		RestaurantFilter: repository.RestaurantFilter{
			Status:   c.Query("status"),
			Category: c.Query("category"),
			Search:   c.Query("q"),
		},
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	})
	if err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.Paged(c, items, page, limit, total)
}

// GET /admin/merchants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := rc.Svc.Detail(id)
	if err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.OK(c, r)
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /admin/merchants/:id/status
func (rc *RestaurantController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := rc.Svc.UpdateStatus(id, req.Status)
	if err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.OK(c, r)
}

// GET /admin/merchants/:id/menus
func (rc *RestaurantController) Menus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	menus, err := rc.Svc.Menus(id)
	if err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": menus})
}

// GET /admin/merchants/:id/ingredients?lowStock=true
func (rc *RestaurantController) Ingredients(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := rc.Svc.Ingredients(id, c.Query("lowStock") == "true")
	if err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type availabilityReq struct {
	Available *bool `json:"available" binding:"required"`
}

// PATCH /admin/menus/:id/availability
func (rc *RestaurantController) UpdateMenuAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req availabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := rc.Svc.SetMenuAvailability(id, *req.Available); err != nil {
		fail(c, rc.Log, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "available": *req.Available})
}
