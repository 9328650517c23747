package services

import (
	"testing"
	"time"

	"dashboard/entity"

	"github.com/shopspring/decimal"
)

func TestComputeOrderStatsEmpty(t *testing.T) {
	st := ComputeOrderStats(nil, nil)
	if st.TotalOrders != 0 || st.CompletionRate != 0 || st.CancellationRate != 0 {
		t.Errorf("stats = %+v", st)
	}
	if !st.AverageOrderValue.IsZero() || len(st.ByMerchant) != 0 || st.TopItems == nil {
		t.Errorf("empty stats = %+v", st)
	}
	if _, ok := st.ByStatus[entity.OrderPending]; !ok {
		t.Error("ByStatus should list every status")
	}
}

func TestComputeOrderStats(t *testing.T) {
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	withItem := func(o entity.Order, menuID uint, qty int, price int64) entity.Order {
		o.Items = []entity.OrderItem{{MenuID: menuID, Name: "item", Qty: qty, UnitPrice: decimal.NewFromInt(price)}}
		return o
	}
	orders := []entity.Order{
		withItem(order(1, "a", "A", 100, entity.OrderCompleted, day), 10, 2, 40),
		withItem(order(1, "b", "B", 50, entity.OrderCancelled, day), 10, 1, 40),
		withItem(order(2, "a", "A", 300, entity.OrderCompleted, day.AddDate(0, 0, 1)), 20, 1, 280),
		order(2, "c", "C", 80, entity.OrderPending, day.AddDate(0, 0, -1)),
	}
	st := ComputeOrderStats(orders, map[uint]string{1: "One", 2: "Two"})

	if st.TotalOrders != 4 || st.CompletedOrders != 2 || st.CancelledOrders != 1 {
		t.Errorf("counts = %d %d %d", st.TotalOrders, st.CompletedOrders, st.CancelledOrders)
	}
	if !st.TotalRevenue.Equal(decimal.NewFromInt(400)) {
		t.Errorf("TotalRevenue = %s, want 400", st.TotalRevenue)
	}
	if !st.AverageOrderValue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("AverageOrderValue = %s", st.AverageOrderValue)
	}
	if st.CompletionRate != 50 || st.CancellationRate != 25 {
		t.Errorf("rates = %v %v", st.CompletionRate, st.CancellationRate)
	}
	if len(st.ByMerchant) != 2 || st.ByMerchant[0].MerchantName != "Two" {
		t.Errorf("ByMerchant = %+v", st.ByMerchant)
	}
	if len(st.Daily) != 3 || st.Daily[0].Date != "2024-05-31" {
		t.Errorf("Daily = %+v", st.Daily)
	}
	if len(st.TopItems) != 2 || st.TopItems[0].MenuID != 20 || st.TopItems[1].Qty != 2 {
		t.Errorf("TopItems = %+v", st.TopItems)
	}
}

func TestPercentRounding(t *testing.T) {
	if got := percent(1, 3); got != 33.3 {
		t.Errorf("percent(1,3) = %v", got)
	}
	if got := percent(0, 0); got != 0 {
		t.Errorf("percent(0,0) = %v", got)
	}
}

func TestOverview(t *testing.T) {
	db := newTestDB(t, true)
	r := reposFor(db)
	svc := NewAnalyticsService(r.orders, r.rests, r.users, r.invoices)

	ov, err := svc.Overview(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if ov.TotalMerchants != 6 || ov.ActiveMerchants != 4 {
		t.Errorf("merchants = %d/%d", ov.ActiveMerchants, ov.TotalMerchants)
	}
	if ov.TotalUsers != 7 {
		t.Errorf("TotalUsers = %d, want 7", ov.TotalUsers)
	}
	// the newest seeded order is an hour old
	if time.Now().Hour() >= 1 && ov.OrdersToday < 1 {
		t.Errorf("OrdersToday = %d", ov.OrdersToday)
	}
	if ov.PendingInvoices < 6 {
		t.Errorf("PendingInvoices = %d", ov.PendingInvoices)
	}

	st, err := svc.OrderStats(StatsFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalOrders != 150 {
		t.Errorf("TotalOrders = %d, want 150", st.TotalOrders)
	}
}
