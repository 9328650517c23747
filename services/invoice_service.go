package services

import (
	"fmt"
	"strings"
	"time"

	"dashboard/entity"
	"dashboard/repository"

	"github.com/shopspring/decimal"
)

// InvoiceView is an invoice with its status evaluated at read time.
type InvoiceView struct {
	ID           uint            `json:"id"`
	Number       string          `json:"number"`
	MerchantID   uint            `json:"merchantId"`
	MerchantName string          `json:"merchantName"`
	OrderID      *uint           `json:"orderId,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueAt        time.Time       `json:"dueAt"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
}

type InvoiceFilter struct {
	MerchantID uint
	Status     string
	From       *time.Time
	To         *time.Time
	Search     string
}

type StatusTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type InvoiceSummary struct {
	Count    int                    `json:"count"`
	Total    decimal.Decimal        `json:"total"`
	ByStatus map[string]StatusTotal `json:"byStatus"`
}

type InvoiceService struct {
	Repo *repository.InvoiceRepository
	Now  func() time.Time
}

func NewInvoiceService(repo *repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{Repo: repo, Now: time.Now}
}

func NewInvoiceView(inv entity.Invoice, now time.Time) InvoiceView {
	return InvoiceView{
		ID:           inv.ID,
		Number:       inv.Number,
		MerchantID:   inv.RestaurantID,
		MerchantName: inv.Restaurant.Name,
		OrderID:      inv.OrderID,
		Amount:       inv.Amount,
		Tax:          inv.Tax,
		Total:        inv.Total(),
		Status:       inv.EffectiveStatus(now),
		IssuedAt:     inv.IssuedAt,
		DueAt:        inv.DueAt,
		PaidAt:       inv.PaidAt,
	}
}

// FilterInvoices applies status and search to views. Search matches the
// invoice number or merchant name, case-insensitively.
func FilterInvoices(views []InvoiceView, status, search string) []InvoiceView {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]InvoiceView, 0, len(views))
	for _, v := range views {
		if status != "" && v.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(v.Number), search) &&
			!strings.Contains(strings.ToLower(v.MerchantName), search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func SummarizeInvoices(views []InvoiceView) *InvoiceSummary {
	sum := &InvoiceSummary{Total: decimal.Zero, ByStatus: make(map[string]StatusTotal, len(entity.InvoiceStatuses))}
	for _, s := range entity.InvoiceStatuses {
		sum.ByStatus[s] = StatusTotal{Amount: decimal.Zero}
	}
	for _, v := range views {
		st := sum.ByStatus[v.Status]
		st.Count++
		st.Amount = st.Amount.Add(v.Total)
		sum.ByStatus[v.Status] = st
		sum.Count++
		sum.Total = sum.Total.Add(v.Total)
	}
	return sum
}

func (s *InvoiceService) List(f InvoiceFilter) ([]InvoiceView, error) {
	if f.Status != "" && !entity.ValidInvoiceStatus(f.Status) {
		return nil, invalid("unknown invoice status %q", f.Status)
	}
	invs, err := s.Repo.FindAll(f.MerchantID, f.From, f.To)
	if err != nil {
		return nil, wrapDB("load invoices", err)
	}
	now := s.Now()
	views := make([]InvoiceView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, NewInvoiceView(inv, now))
	}
	return FilterInvoices(views, f.Status, f.Search), nil
}

func (s *InvoiceService) Get(id uint) (*InvoiceView, error) {
	inv, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, wrapDB(fmt.Sprintf("invoice %d", id), err)
	}
	v := NewInvoiceView(*inv, s.Now())
	return &v, nil
}

func (s *InvoiceService) Summary(f InvoiceFilter) (*InvoiceSummary, error) {
	views, err := s.List(f)
	if err != nil {
		return nil, err
	}
	return SummarizeInvoices(views), nil
}

// MarkPaid settles a pending or overdue invoice.
func (s *InvoiceService) MarkPaid(id uint, at time.Time) (*InvoiceView, error) {
	v, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if v.Status == entity.InvoicePaid || v.Status == entity.InvoiceCancelled {
		return nil, fmt.Errorf("invoice %d is %s: %w", id, v.Status, ErrInvalidTransition)
	}
	if err := s.Repo.Update(id, map[string]any{"status": entity.InvoicePaid, "paid_at": at.UTC()}); err != nil {
		return nil, wrapDB("mark invoice paid", err)
	}
	return s.Get(id)
}

func (s *InvoiceService) Cancel(id uint) (*InvoiceView, error) {
	v, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if v.Status == entity.InvoicePaid || v.Status == entity.InvoiceCancelled {
		return nil, fmt.Errorf("invoice %d is %s: %w", id, v.Status, ErrInvalidTransition)
	}
	if err := s.Repo.Update(id, map[string]any{"status": entity.InvoiceCancelled}); err != nil {
		return nil, wrapDB("cancel invoice", err)
	}
	return s.Get(id)
}
