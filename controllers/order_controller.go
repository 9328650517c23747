package controllers

import (
	"dashboard/pkg/resp"
	"dashboard/repository"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	Svc       *services.OrderService
	Analytics *services.AnalyticsService
	Log       *zap.Logger
}

func NewOrderController(svc *services.OrderService, analytics *services.AnalyticsService, log *zap.Logger) *OrderController {
	return &OrderController{Svc: svc, Analytics: analytics, Log: log}
}

// GET /admin/orders?merchantId=&status=&customerId=&from=&to=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	merchantID, ok := queryUint(c, "merchantId")
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	page, err := oc.Svc.List(services.OrderListReq{
		OrderFilter: repository.OrderFilter{
			MerchantID: merchantID,
			Status:     c.Query("status"),
			CustomerID: c.Query("customerId"),
			From:       from,
			To:         to,
		},
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	})
	if err != nil {
		fail(c, oc.Log, err)
		return
	}
	resp.Paged(c, page.Items, page.Page, page.Limit, page.Total)
}

// GET /admin/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Detail(id)
	if err != nil {
		fail(c, oc.Log, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /admin/orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Svc.UpdateStatus(id, req.Status)
	if err != nil {
		fail(c, oc.Log, err)
		return
	}
	oc.Log.Info("order status changed", zap.Uint("orderId", id), zap.String("status", o.Status))
	resp.OK(c, o)
}

// GET /admin/orders/stats?merchantId=&from=&to=
func (oc *OrderController) Stats(c *gin.Context) {
	merchantID, ok := queryUint(c, "merchantId")
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	st, err := oc.Analytics.OrderStats(services.StatsFilter{MerchantID: merchantID, From: from, To: to})
	if err != nil {
		fail(c, oc.Log, err)
		return
	}
	resp.OK(c, st)
}
