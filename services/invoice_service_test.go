package services

import (
	"errors"
	"testing"
	"time"

	"dashboard/entity"

	"github.com/shopspring/decimal"
)

func TestNewInvoiceViewOverdue(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	inv := entity.Invoice{
		Number: "INV-1",
		Amount: decimal.NewFromInt(100),
		Tax:    decimal.NewFromInt(7),
		Status: entity.InvoicePending,
		DueAt:  now.AddDate(0, 0, -1),
	}
	v := NewInvoiceView(inv, now)
	if v.Status != entity.InvoiceOverdue {
		t.Errorf("Status = %s, want overdue", v.Status)
	}
	if !v.Total.Equal(decimal.NewFromInt(107)) {
		t.Errorf("Total = %s", v.Total)
	}

	inv.DueAt = now.AddDate(0, 0, 1)
	if v := NewInvoiceView(inv, now); v.Status != entity.InvoicePending {
		t.Errorf("Status = %s, want pending", v.Status)
	}
	inv.Status = entity.InvoicePaid
	inv.DueAt = now.AddDate(0, 0, -1)
	if v := NewInvoiceView(inv, now); v.Status != entity.InvoicePaid {
		t.Errorf("paid invoice past due reads %s", v.Status)
	}
}

func TestFilterAndSummarizeInvoices(t *testing.T) {
	views := []InvoiceView{
		{Number: "INV-202406-0001", MerchantName: "Napoli Slice", Status: entity.InvoiceOverdue, Total: decimal.NewFromInt(10)},
		{Number: "INV-202406-0002", MerchantName: "Burger Yard", Status: entity.InvoicePending, Total: decimal.NewFromInt(20)},
		{Number: "INV-202405-0003", MerchantName: "Burger Yard", Status: entity.InvoicePaid, Total: decimal.NewFromInt(30)},
	}

	if got := FilterInvoices(views, entity.InvoiceOverdue, ""); len(got) != 1 || got[0].Number != "INV-202406-0001" {
		t.Errorf("overdue filter = %+v", got)
	}
	if got := FilterInvoices(views, "", "burger"); len(got) != 2 {
		t.Errorf("merchant search = %d, want 2", len(got))
	}
	if got := FilterInvoices(views, "", "202405"); len(got) != 1 {
		t.Errorf("number search = %d, want 1", len(got))
	}

	sum := SummarizeInvoices(views)
	if sum.Count != 3 || !sum.Total.Equal(decimal.NewFromInt(60)) {
		t.Errorf("summary = %d %s", sum.Count, sum.Total)
	}
	if st := sum.ByStatus[entity.InvoiceOverdue]; st.Count != 1 || !st.Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("overdue = %+v", st)
	}
	if st, ok := sum.ByStatus[entity.InvoiceCancelled]; !ok || st.Count != 0 {
		t.Errorf("cancelled bucket missing: %+v", sum.ByStatus)
	}
}

func TestInvoiceServiceLifecycle(t *testing.T) {
	db := newTestDB(t, true)
	svc := NewInvoiceService(reposFor(db).invoices)

	overdue, err := svc.List(InvoiceFilter{Status: entity.InvoiceOverdue})
	if err != nil {
		t.Fatal(err)
	}
	if len(overdue) == 0 {
		t.Fatal("expected seeded overdue invoices")
	}
	for _, v := range overdue {
		if v.Status != entity.InvoiceOverdue || !v.DueAt.Before(time.Now()) {
			t.Errorf("%s: status %s due %v", v.Number, v.Status, v.DueAt)
		}
	}

	sum, err := svc.Summary(InvoiceFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if sum.ByStatus[entity.InvoiceOverdue].Count != len(overdue) {
		t.Errorf("summary overdue = %d, list = %d", sum.ByStatus[entity.InvoiceOverdue].Count, len(overdue))
	}

	paidAt := time.Now().Truncate(time.Second)
	v, err := svc.MarkPaid(overdue[0].ID, paidAt)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if v.Status != entity.InvoicePaid || v.PaidAt == nil {
		t.Errorf("after pay: %+v", v)
	}
	if _, err := svc.MarkPaid(v.ID, paidAt); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pay twice: err = %v", err)
	}
	if _, err := svc.Cancel(v.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancel paid: err = %v", err)
	}

	if _, err := svc.Get(99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v", err)
	}
	if _, err := svc.List(InvoiceFilter{Status: "bogus"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad status: err = %v", err)
	}
}
