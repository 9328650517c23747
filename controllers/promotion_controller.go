package controllers

import (
	"strconv"
	"time"

	"dashboard/pkg/resp"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PromotionController struct {
	Svc *services.PromotionService
	Log *zap.Logger
}

func NewPromotionController(svc *services.PromotionService, log *zap.Logger) *PromotionController {
	return &PromotionController{Svc: svc, Log: log}
}

// GET /admin/promotions?active=&merchantId=&running=
func (pc *PromotionController) List(c *gin.Context) {
	var f services.PromotionFilter
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "invalid active")
			return
		}
		f.Active = &b
	}
	if v := c.Query("running"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "invalid running")
			return
		}
		if b {
			now := time.Now()
			f.RunningAt = &now
		}
	}
	merchantID, ok := queryUint(c, "merchantId")
	if !ok {
		return
	}
	f.MerchantID = merchantID

	items, err := pc.Svc.List(f)
	if err != nil {
		fail(c, pc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /admin/promotions
func (pc *PromotionController) Create(c *gin.Context) {
	var in services.PromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	p, err := pc.Svc.Create(in)
	if err != nil {
		fail(c, pc.Log, err)
		return
	}
	resp.Created(c, p)
}

// PUT /admin/promotions/:id
func (pc *PromotionController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.PromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	p, err := pc.Svc.Update(id, in)
	if err != nil {
		fail(c, pc.Log, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /admin/promotions/:id
func (pc *PromotionController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.Svc.Delete(id); err != nil {
		fail(c, pc.Log, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
