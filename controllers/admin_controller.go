package controllers

import (
	"dashboard/pkg/resp"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	Analytics *services.AnalyticsService
	Log       *zap.Logger
}

func NewAdminController(analytics *services.AnalyticsService, log *zap.Logger) *AdminController {
	return &AdminController{Analytics: analytics, Log: log}
}

// GET /admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	ov, err := ac.Analytics.Overview(ac.Analytics.Now())
	if err != nil {
		fail(c, ac.Log, err)
		return
	}
	resp.OK(c, ov)
}
