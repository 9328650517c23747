package controllers

import (
	"strconv"

	"dashboard/pkg/csvexport"
	"dashboard/pkg/resp"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var clientCSVHeader = []string{
	"Client ID", "Merchant", "Name", "Email", "Phone", "Orders", "Completed",
	"Total Spent", "Average Order", "First Order", "Last Order", "Status",
}

type ClientController struct {
	Svc *services.ClientService
	Log *zap.Logger
}

func NewClientController(svc *services.ClientService, log *zap.Logger) *ClientController {
	return &ClientController{Svc: svc, Log: log}
}

func (cc *ClientController) filter(c *gin.Context) (services.ClientFilter, bool) {
	merchantID, ok := queryUint(c, "merchantId")
	if !ok {
		return services.ClientFilter{}, false
	}
	status := c.Query("status")
	if status != "" && status != "active" && status != "inactive" {
		resp.BadRequest(c, "invalid status")
		return services.ClientFilter{}, false
	}
	return services.ClientFilter{
		MerchantID: merchantID,
		Status:     status,
		Search:     c.Query("q"),
		SortBy:     c.Query("sort"),
		Order:      c.Query("order"),
	}, true
}

// GET /admin/clients?merchantId=&status=&q=&sort=&order=
func (cc *ClientController) List(c *gin.Context) {
	f, ok := cc.filter(c)
	if !ok {
		return
	}
	list, err := cc.Svc.List(f)
	if err != nil {
		fail(c, cc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": list, "total": len(list)})
}

// GET /admin/clients/stats
func (cc *ClientController) Stats(c *gin.Context) {
	f, ok := cc.filter(c)
	if !ok {
		return
	}
	st, err := cc.Svc.Stats(f)
	if err != nil {
		fail(c, cc.Log, err)
		return
	}
	resp.OK(c, st)
}

// GET /admin/clients/:merchantId/:customerId
func (cc *ClientController) Detail(c *gin.Context) {
	merchantID, ok := paramID(c, "merchantId")
	if !ok {
		return
	}
	p, err := cc.Svc.Get(merchantID, c.Param("customerId"))
	if err != nil {
		fail(c, cc.Log, err)
		return
	}
	resp.OK(c, p)
}

// GET /admin/clients/:merchantId/:customerId/orders
func (cc *ClientController) Orders(c *gin.Context) {
	merchantID, ok := paramID(c, "merchantId")
	if !ok {
		return
	}
	orders, err := cc.Svc.Orders(merchantID, c.Param("customerId"))
	if err != nil {
		fail(c, cc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// GET /admin/clients/export
func (cc *ClientController) Export(c *gin.Context) {
	f, ok := cc.filter(c)
	if !ok {
		return
	}
	list, err := cc.Svc.List(f)
	if err != nil {
		fail(c, cc.Log, err)
		return
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.ID, p.MerchantName, p.Name, p.Email, p.Phone,
			strconv.Itoa(p.OrderCount), strconv.Itoa(p.CompletedOrders),
			money(p.TotalSpent), money(p.AverageOrder),
			stamp(p.FirstOrderAt), stamp(p.LastOrderAt), p.Status,
		})
	}
	writeCSV(c, cc.Log, csvexport.Filename("clients", cc.Svc.Now().Format("20060102")), clientCSVHeader, rows)
}

func writeCSV(c *gin.Context, log *zap.Logger, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(200)
	if err := csvexport.Write(c.Writer, header, rows); err != nil {
		log.Error("csv export failed", zap.String("file", filename), zap.Error(err))
	}
}
