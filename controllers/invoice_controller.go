package controllers

import (
	"time"

	"dashboard/pkg/csvexport"
	"dashboard/pkg/resp"
	"dashboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var invoiceCSVHeader = []string{
	"Invoice", "Merchant", "Amount", "Tax", "Total", "Status", "Issued", "Due", "Paid",
}

type InvoiceController struct {
	Svc *services.InvoiceService
	Log *zap.Logger
}

func NewInvoiceController(svc *services.InvoiceService, log *zap.Logger) *InvoiceController {
	return &InvoiceController{Svc: svc, Log: log}
}

func (ic *InvoiceController) filter(c *gin.Context) (services.InvoiceFilter, bool) {
	merchantID, ok := queryUint(c, "merchantId")
	if !ok {
		return services.InvoiceFilter{}, false
	}
	from, to, ok := dateRange(c)
	if !ok {
		return services.InvoiceFilter{}, false
	}
	return services.InvoiceFilter{
		MerchantID: merchantID,
		Status:     c.Query("status"),
		From:       from,
		To:         to,
		Search:     c.Query("q"),
	}, true
}

// GET /admin/invoices?merchantId=&status=&from=&to=&q=
func (ic *InvoiceController) List(c *gin.Context) {
	f, ok := ic.filter(c)
	if !ok {
		return
	}
	list, err := ic.Svc.List(f)
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": list, "total": len(list)})
}

// GET /admin/invoices/summary
func (ic *InvoiceController) Summary(c *gin.Context) {
	f, ok := ic.filter(c)
	if !ok {
		return
	}
	sum, err := ic.Svc.Summary(f)
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	resp.OK(c, sum)
}

// GET /admin/invoices/:id
func (ic *InvoiceController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	v, err := ic.Svc.Get(id)
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	resp.OK(c, v)
}

// PATCH /admin/invoices/:id/pay
func (ic *InvoiceController) Pay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	v, err := ic.Svc.MarkPaid(id, ic.Svc.Now())
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	ic.Log.Info("invoice paid", zap.String("number", v.Number))
	resp.OK(c, v)
}

// PATCH /admin/invoices/:id/cancel
func (ic *InvoiceController) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	v, err := ic.Svc.Cancel(id)
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	resp.OK(c, v)
}

// GET /admin/invoices/export
func (ic *InvoiceController) Export(c *gin.Context) {
	f, ok := ic.filter(c)
	if !ok {
		return
	}
	list, err := ic.Svc.List(f)
	if err != nil {
		fail(c, ic.Log, err)
		return
	}
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		paid := ""
		if v.PaidAt != nil {
			paid = v.PaidAt.Format(time.DateOnly)
		}
		rows = append(rows, []string{
			v.Number, v.MerchantName, money(v.Amount), money(v.Tax), money(v.Total), v.Status,
			v.IssuedAt.Format(time.DateOnly), v.DueAt.Format(time.DateOnly), paid,
		})
	}
	writeCSV(c, ic.Log, csvexport.Filename("invoices", ic.Svc.Now().Format("20060102")), invoiceCSVHeader, rows)
}
