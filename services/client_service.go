package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"dashboard/entity"
	"dashboard/repository"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
)

// A client with no order in this window is inactive.
const activeClientWindow = 30 * 24 * time.Hour

// ClientProfile is a customer as seen by one merchant, derived from that merchant's orders.
type ClientProfile struct {
	ID              string          `json:"id"`
	MerchantID      uint            `json:"merchantId"`
	MerchantName    string          `json:"merchantName"`
	CustomerID      string          `json:"customerId"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	OrderCount      int             `json:"orderCount"`
	CompletedOrders int             `json:"completedOrders"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	AverageOrder    decimal.Decimal `json:"averageOrder"`
	FirstOrderAt    time.Time       `json:"firstOrderAt"`
	LastOrderAt     time.Time       `json:"lastOrderAt"`
	Status          string          `json:"status"`
}

type ClientFilter struct {
	MerchantID uint
	Status     string // active | inactive
	Search     string
	SortBy     string // totalSpent | orderCount | lastOrder | name
	Order      string // asc | desc, default depends on SortBy
}

type ClientStats struct {
	TotalClients  int             `json:"totalClients"`
	ActiveClients int             `json:"activeClients"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AverageSpent  decimal.Decimal `json:"averageSpent"`
}

type ClientService struct {
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository
	Now       func() time.Time
}

func NewClientService(orders *repository.OrderRepository, rests *repository.RestaurantRepository) *ClientService {
	return &ClientService{OrderRepo: orders, RestRepo: rests, Now: time.Now}
}

func ClientKey(merchantID uint, customerID string) string {
	return fmt.Sprintf("%d-%s", merchantID, customerID)
}

// AggregateClients groups orders by (merchant, customer). Contact details come
// from the group's most recent order. The result is sorted by total spent, highest first.
func AggregateClients(orders []entity.Order, merchantNames map[uint]string, now time.Time) []ClientProfile {
	byKey := make(map[string]*ClientProfile)
	for _, o := range orders {
		key := ClientKey(o.RestaurantID, o.CustomerID)
		p, ok := byKey[key]
		if !ok {
			p = &ClientProfile{
				ID:           key,
				MerchantID:   o.RestaurantID,
				MerchantName: merchantNames[o.RestaurantID],
				CustomerID:   o.CustomerID,
				TotalSpent:   decimal.Zero,
				Name:         o.CustomerName,
				Email:        o.CustomerEmail,
				Phone:        o.CustomerPhone,
				FirstOrderAt: o.CreatedAt,
				LastOrderAt:  o.CreatedAt,
			}
			byKey[key] = p
		}
		p.OrderCount++
		if o.Status == entity.OrderCompleted {
			p.CompletedOrders++
		}
		p.TotalSpent = p.TotalSpent.Add(o.TotalPrice)
		if o.CreatedAt.Before(p.FirstOrderAt) {
			p.FirstOrderAt = o.CreatedAt
		}
		if o.CreatedAt.After(p.LastOrderAt) {
			p.LastOrderAt = o.CreatedAt
			p.Name, p.Email, p.Phone = o.CustomerName, o.CustomerEmail, o.CustomerPhone
		}
	}

	out := make([]ClientProfile, 0, len(byKey))
	for _, p := range byKey {
		p.AverageOrder = p.TotalSpent.Div(decimal.NewFromInt(int64(p.OrderCount))).Round(2)
		p.Status = "inactive"
		if now.Sub(p.LastOrderAt) <= activeClientWindow {
			p.Status = "active"
		}
		out = append(out, *p)
	}
	sortClients(out, "totalSpent", "desc")
	return out
}

func sortClients(list []ClientProfile, by, order string) {
	if order == "" {
		order = "desc"
		if by == "name" {
			order = "asc"
		}
	}
	less := func(a, b ClientProfile) int {
		switch by {
		case "orderCount":
			return a.OrderCount - b.OrderCount
		case "lastOrder":
			return a.LastOrderAt.Compare(b.LastOrderAt)
		case "name":
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		default:
			return a.TotalSpent.Cmp(b.TotalSpent)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := less(list[i], list[j])
		if c == 0 {
			return list[i].ID < list[j].ID
		}
		if order == "asc" {
			return c < 0
		}
		return c > 0
	})
}

// matchClient does a case-insensitive substring match on name, email and phone.
// Longer terms also match a name token within edit distance 2.
func matchClient(p ClientProfile, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{p.Name, p.Email, p.Phone} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	if utf8.RuneCountInString(term) < 4 {
		return false
	}
	for _, tok := range strings.Fields(strings.ToLower(p.Name)) {
		if levenshtein.ComputeDistance(term, tok) <= 2 {
			return true
		}
	}
	return false
}

func (s *ClientService) profiles(f repository.OrderFilter, withItems bool) ([]ClientProfile, error) {
	orders, err := s.OrderRepo.FindAll(f, withItems)
	if err != nil {
		return nil, wrapDB("load orders", err)
	}
	names, err := s.RestRepo.Names()
	if err != nil {
		return nil, wrapDB("load merchants", err)
	}
	return AggregateClients(orders, names, s.Now()), nil
}

func (s *ClientService) List(f ClientFilter) ([]ClientProfile, error) {
	all, err := s.profiles(repository.OrderFilter{MerchantID: f.MerchantID}, false)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !matchClient(p, f.Search) {
			continue
		}
		out = append(out, p)
	}
	sortClients(out, f.SortBy, f.Order)
	return out, nil
}

func (s *ClientService) Get(merchantID uint, customerID string) (*ClientProfile, error) {
	list, err := s.profiles(repository.OrderFilter{MerchantID: merchantID, CustomerID: customerID}, false)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("client %s: %w", ClientKey(merchantID, customerID), ErrNotFound)
	}
	return &list[0], nil
}

// Orders returns the client's orders newest first.
func (s *ClientService) Orders(merchantID uint, customerID string) ([]entity.Order, error) {
	orders, err := s.OrderRepo.FindAll(repository.OrderFilter{MerchantID: merchantID, CustomerID: customerID}, true)
	if err != nil {
		return nil, wrapDB("load client orders", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("client %s: %w", ClientKey(merchantID, customerID), ErrNotFound)
	}
	return orders, nil
}

func (s *ClientService) Stats(f ClientFilter) (*ClientStats, error) {
	list, err := s.List(f)
	if err != nil {
		return nil, err
	}
	return SummarizeClients(list), nil
}

func SummarizeClients(list []ClientProfile) *ClientStats {
	st := &ClientStats{TotalClients: len(list), TotalRevenue: decimal.Zero, AverageSpent: decimal.Zero}
	for _, p := range list {
		if p.Status == "active" {
			st.ActiveClients++
		}
		st.TotalRevenue = st.TotalRevenue.Add(p.TotalSpent)
	}
	if len(list) > 0 {
		st.AverageSpent = st.TotalRevenue.Div(decimal.NewFromInt(int64(len(list)))).Round(2)
	}
	return st
}
