package services

import (
	"math"
	"sort"
	"time"

	"dashboard/entity"
	"dashboard/repository"

	"github.com/shopspring/decimal"
)

const topItemsLimit = 5

type MerchantRevenue struct {
	MerchantID   uint            `json:"merchantId"`
	MerchantName string          `json:"merchantName"`
	Orders       int             `json:"orders"`
	Completed    int             `json:"completed"`
	Revenue      decimal.Decimal `json:"revenue"`
	AverageOrder decimal.Decimal `json:"averageOrder"`
}

type DailyRevenue struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ItemSales struct {
	MenuID  uint            `json:"menuId"`
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderStats summarizes a set of orders. Revenue only counts completed orders;
// rates are percentages of all orders in the set.
type OrderStats struct {
	TotalOrders       int               `json:"totalOrders"`
	CompletedOrders   int               `json:"completedOrders"`
	CancelledOrders   int               `json:"cancelledOrders"`
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal   `json:"averageOrderValue"`
	CompletionRate    float64           `json:"completionRate"`
	CancellationRate  float64           `json:"cancellationRate"`
	ByStatus          map[string]int    `json:"byStatus"`
	ByMerchant        []MerchantRevenue `json:"byMerchant"`
	Daily             []DailyRevenue    `json:"daily"`
	TopItems          []ItemSales       `json:"topItems"`
}

type StatsFilter struct {
	MerchantID uint
	From       *time.Time
	To         *time.Time
}

// Overview is the dashboard headline numbers.
type Overview struct {
	TotalMerchants      int64           `json:"totalMerchants"`
	ActiveMerchants     int64           `json:"activeMerchants"`
	TotalUsers          int64           `json:"totalUsers"`
	OrdersToday         int64           `json:"ordersToday"`
	RevenueToday        decimal.Decimal `json:"revenueToday"`
	PendingInvoices     int64           `json:"pendingInvoices"`
	LowStockIngredients int             `json:"lowStockIngredients"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

type AnalyticsService struct {
	Orders      *repository.OrderRepository
	Restaurants *repository.RestaurantRepository
	Users       *repository.UserRepository
	Invoices    *repository.InvoiceRepository
	Now         func() time.Time
}

func NewAnalyticsService(
	orders *repository.OrderRepository,
	rests *repository.RestaurantRepository,
	users *repository.UserRepository,
	invoices *repository.InvoiceRepository,
) *AnalyticsService {
	return &AnalyticsService{Orders: orders, Restaurants: rests, Users: users, Invoices: invoices, Now: time.Now}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// ComputeOrderStats aggregates orders. Items must be loaded for TopItems.
func ComputeOrderStats(orders []entity.Order, merchantNames map[uint]string) *OrderStats {
	st := &OrderStats{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		ByStatus:     make(map[string]int, len(entity.OrderStatuses)),
		ByMerchant:   []MerchantRevenue{},
		Daily:        []DailyRevenue{},
		TopItems:     []ItemSales{},
	}
	for _, s := range entity.OrderStatuses {
		st.ByStatus[s] = 0
	}

	merchants := make(map[uint]*MerchantRevenue)
	days := make(map[string]*DailyRevenue)
	items := make(map[uint]*ItemSales)

	for _, o := range orders {
		st.ByStatus[o.Status]++

		m, ok := merchants[o.RestaurantID]
		if !ok {
			m = &MerchantRevenue{MerchantID: o.RestaurantID, MerchantName: merchantNames[o.RestaurantID], Revenue: decimal.Zero}
			merchants[o.RestaurantID] = m
		}
		m.Orders++

		day := o.CreatedAt.Format("2006-01-02")
		d, ok := days[day]
		if !ok {
			d = &DailyRevenue{Date: day, Revenue: decimal.Zero}
			days[day] = d
		}
		d.Orders++

		if o.Status == entity.OrderCancelled {
			st.CancelledOrders++
		}
		if o.Status != entity.OrderCompleted {
			continue
		}

		st.CompletedOrders++
		st.TotalRevenue = st.TotalRevenue.Add(o.TotalPrice)
		m.Completed++
		m.Revenue = m.Revenue.Add(o.TotalPrice)
		d.Revenue = d.Revenue.Add(o.TotalPrice)

		for _, it := range o.Items {
			is, ok := items[it.MenuID]
			if !ok {
				is = &ItemSales{MenuID: it.MenuID, Name: it.Name, Revenue: decimal.Zero}
				items[it.MenuID] = is
			}
			is.Qty += it.Qty
			is.Revenue = is.Revenue.Add(it.Total())
		}
	}

	st.AverageOrderValue = average(st.TotalRevenue, st.CompletedOrders)
	st.CompletionRate = percent(st.CompletedOrders, st.TotalOrders)
	st.CancellationRate = percent(st.CancelledOrders, st.TotalOrders)

	for _, m := range merchants {
		m.AverageOrder = average(m.Revenue, m.Completed)
		st.ByMerchant = append(st.ByMerchant, *m)
	}
	sort.Slice(st.ByMerchant, func(i, j int) bool {
		a, b := st.ByMerchant[i], st.ByMerchant[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.MerchantName < b.MerchantName
	})

	for _, d := range days {
		st.Daily = append(st.Daily, *d)
	}
	sort.Slice(st.Daily, func(i, j int) bool { return st.Daily[i].Date < st.Daily[j].Date })

	for _, is := range items {
		st.TopItems = append(st.TopItems, *is)
	}
	sort.Slice(st.TopItems, func(i, j int) bool {
		a, b := st.TopItems[i], st.TopItems[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.MenuID < b.MenuID
	})
	if len(st.TopItems) > topItemsLimit {
		st.TopItems = st.TopItems[:topItemsLimit]
	}
	return st
}

func (s *AnalyticsService) OrderStats(f StatsFilter) (*OrderStats, error) {
	orders, err := s.Orders.FindAll(repository.OrderFilter{MerchantID: f.MerchantID, From: f.From, To: f.To}, true)
	if err != nil {
		return nil, wrapDB("load orders", err)
	}
	names, err := s.Restaurants.Names()
	if err != nil {
		return nil, wrapDB("load merchants", err)
	}
	return ComputeOrderStats(orders, names), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Overview counts "today" from local midnight of now.
func (s *AnalyticsService) Overview(now time.Time) (*Overview, error) {
	ov := &Overview{RevenueToday: decimal.Zero, GeneratedAt: now}

	byStatus, err := s.Restaurants.CountByStatus()
	if err != nil {
		return nil, wrapDB("count merchants", err)
	}
	for status, n := range byStatus {
		ov.TotalMerchants += n
		if status == entity.RestaurantActive {
			ov.ActiveMerchants = n
		}
	}

	if ov.TotalUsers, err = s.Users.Count(); err != nil {
		return nil, wrapDB("count users", err)
	}

	start := startOfDay(now)
	today, err := s.Orders.FindAll(repository.OrderFilter{From: &start}, false)
	if err != nil {
		return nil, wrapDB("orders today", err)
	}
	ov.OrdersToday = int64(len(today))
	for _, o := range today {
		if o.Status == entity.OrderCompleted {
			ov.RevenueToday = ov.RevenueToday.Add(o.TotalPrice)
		}
	}

	if ov.PendingInvoices, err = s.Invoices.CountPending(); err != nil {
		return nil, wrapDB("count invoices", err)
	}

	ings, err := s.Restaurants.Ingredients(0)
	if err != nil {
		return nil, wrapDB("load ingredients", err)
	}
	for _, i := range ings {
		if i.LowStock() {
			ov.LowStockIngredients++
		}
	}
	return ov, nil
}
