package configs

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"dashboard/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedRoles = []entity.Role{
	{Name: "admin", Description: "Full access", Permissions: []string{"*"}},
	{Name: "manager", Description: "Read dashboards and reports", Permissions: []string{"dashboard:read", "orders:read", "clients:read", "invoices:read"}},
	{Name: "support", Description: "Customer support", Permissions: []string{"orders:read", "clients:read"}},
}

// SeedAdmin creates the base roles and the first admin user.
func SeedAdmin(database *gorm.DB, email, password string) error {
	for _, r := range seedRoles {
		role := r
		if err := database.Where(entity.Role{Name: role.Name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	if email == "" || password == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("look up admin %s: %w", email, err)
	}
	if count > 0 {
		return nil
	}

	var admin entity.Role
	if err := database.Where("name = ?", "admin").First(&admin).Error; err != nil {
		return fmt.Errorf("admin role: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return database.Create(&entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Status:    entity.UserActive,
		RoleID:    admin.ID,
	}).Error
}

type seedMerchant struct {
	name, category, status string
	menu                   []string
}

var seedMerchants = []seedMerchant{
	{"Bangkok Bites", "Thai", entity.RestaurantActive, []string{"Pad Thai", "Green Curry", "Tom Yum", "Mango Sticky Rice", "Thai Iced Tea"}},
	{"Napoli Slice", "Pizza", entity.RestaurantActive, []string{"Margherita", "Diavola", "Quattro Formaggi", "Tiramisu", "Lemonade"}},
	{"Burger Yard", "Fast Food", entity.RestaurantActive, []string{"Classic Burger", "Cheese Burger", "Fries", "Onion Rings", "Milkshake"}},
	{"Sushi Kaze", "Japanese", entity.RestaurantActive, []string{"Salmon Nigiri", "California Roll", "Miso Soup", "Gyoza", "Matcha"}},
	{"Green Bowl", "Healthy", entity.RestaurantPending, []string{"Quinoa Bowl", "Caesar Salad", "Poke Bowl", "Smoothie", "Granola"}},
	{"Taco Loco", "Mexican", entity.RestaurantSuspended, []string{"Beef Taco", "Burrito", "Nachos", "Quesadilla", "Horchata"}},
}

var seedIngredients = []struct {
	name, unit string
}{
	{"Rice", "kg"}, {"Chicken", "kg"}, {"Cheese", "kg"}, {"Tomato", "kg"}, {"Flour", "kg"}, {"Oil", "l"},
}

var (
	firstNames = []string{"Anan", "Ploy", "Marco", "Giulia", "Sam", "Kenji", "Aiko", "Lucia", "Tom", "Nina", "Omar", "Sara"}
	lastNames  = []string{"Srisuk", "Rossi", "Tanaka", "Smith", "Garcia", "Chen", "Khan", "Novak"}
	payMethods = []string{"card", "cash", "wallet"}
)

// CustomerID returns the stable identifier used for the n-th mock customer.
func CustomerID(n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("customer-%d", n))).String()
}

// SeedMockData fills the store with a deterministic dataset dated relative to now.
// It is a no-op when merchants already exist.
func SeedMockData(database *gorm.DB, now time.Time) error {
	var count int64
	if err := database.Model(&entity.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now = now.UTC()
	rng := rand.New(rand.NewSource(42))

	return database.Transaction(func(tx *gorm.DB) error {
		if err := seedStaff(tx); err != nil {
			return err
		}

		merchants := make([]entity.Restaurant, 0, len(seedMerchants))
		for i, sm := range seedMerchants {
			m := entity.Restaurant{
				Name:           sm.name,
				Email:          fmt.Sprintf("contact%d@merchant.local", i+1),
				Phone:          fmt.Sprintf("02-555-%04d", 1000+i),
				Address:        fmt.Sprintf("%d Market Street", 10+i*7),
				Category:       sm.category,
				OwnerName:      firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
				Status:         sm.status,
				Rating:         3.5 + float64(rng.Intn(15))/10,
				CommissionRate: 0.15,
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("seed merchant: %w", err)
			}

			ings := make([]entity.Ingredient, 0, len(seedIngredients))
			for _, si := range seedIngredients {
				ings = append(ings, entity.Ingredient{
					Name:         si.name,
					Unit:         si.unit,
					StockQty:     float64(rng.Intn(40)),
					ReorderLevel: 10,
					RestaurantID: m.ID,
				})
			}
			if err := tx.Create(&ings).Error; err != nil {
				return fmt.Errorf("seed ingredients: %w", err)
			}

			for j, name := range sm.menu {
				menu := entity.Menu{
					Name:         name,
					Category:     sm.category,
					Price:        decimal.NewFromInt(int64(60 + rng.Intn(240))),
					Available:    j != 3 || i%2 == 0,
					RestaurantID: m.ID,
					Ingredients:  []entity.Ingredient{ings[j%len(ings)], ings[(j+1)%len(ings)]},
				}
				if err := tx.Create(&menu).Error; err != nil {
					return fmt.Errorf("seed menu: %w", err)
				}
				m.Menus = append(m.Menus, menu)
			}
			merchants = append(merchants, m)
		}

		if err := seedOrders(tx, rng, merchants, now); err != nil {
			return err
		}
		if err := seedInvoices(tx, rng, merchants, now); err != nil {
			return err
		}
		return seedPromotions(tx, merchants, now)
	})
}

func seedStaff(tx *gorm.DB) error {
	var roles []entity.Role
	if err := tx.Order("id").Find(&roles).Error; err != nil {
		return err
	}
	if len(roles) < 2 {
		return errors.New("seed roles first")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("staff1234"), bcrypt.MinCost)
	if err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		role := roles[1+i%(len(roles)-1)]
		u := entity.User{
			Email:     fmt.Sprintf("staff%d@dashboard.local", i+1),
			Password:  string(hash),
			FirstName: firstNames[(i+3)%len(firstNames)],
			LastName:  lastNames[(i+2)%len(lastNames)],
			Status:    entity.UserActive,
			RoleID:    role.ID,
		}
		if i == 5 {
			u.Status = entity.UserInactive
		}
		if err := tx.Create(&u).Error; err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
	}
	return nil
}

func seedOrders(tx *gorm.DB, rng *rand.Rand, merchants []entity.Restaurant, now time.Time) error {
	const customers = 20
	seq := 0
	for _, m := range merchants {
		if m.Status == entity.RestaurantPending {
			continue
		}
		for n := 0; n < 30; n++ {
			seq++
			c := rng.Intn(customers)
			placed := now.Add(-time.Duration(rng.Intn(60*24)) * time.Hour)
			if n == 0 {
				placed = now.Add(-time.Hour)
			}

			status := entity.OrderCompleted
			switch r := rng.Intn(10); {
			case r == 0:
				status = entity.OrderCancelled
			case r == 1 && placed.After(now.Add(-48*time.Hour)):
				status = entity.OrderPending
			case r == 2 && placed.After(now.Add(-48*time.Hour)):
				status = entity.OrderDelivering
			}

			fee := decimal.NewFromInt(20)
			total := fee
			items := make([]entity.OrderItem, 0, 3)
			for k := 0; k < 1+rng.Intn(3); k++ {
				menu := m.Menus[rng.Intn(len(m.Menus))]
				it := entity.OrderItem{Name: menu.Name, Qty: 1 + rng.Intn(3), UnitPrice: menu.Price, MenuID: menu.ID}
				total = total.Add(it.Total())
				items = append(items, it)
			}

			first, last := firstNames[c%len(firstNames)], lastNames[c%len(lastNames)]
			o := entity.Order{
				OrderNumber:   fmt.Sprintf("ORD-%05d", seq),
				Status:        status,
				TotalPrice:    total,
				DeliveryFee:   fee,
				PaymentMethod: payMethods[rng.Intn(len(payMethods))],
				RestaurantID:  m.ID,
				CustomerID:    CustomerID(c),
				CustomerName:  first + " " + last,
				CustomerEmail: fmt.Sprintf("customer%d@mail.local", c),
				CustomerPhone: fmt.Sprintf("08-%04d-%04d", 1000+c, 2000+c),
				Items:         items,
			}
			o.CreatedAt = placed
			if err := tx.Create(&o).Error; err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
		}
	}
	return nil
}

func seedInvoices(tx *gorm.DB, rng *rand.Rand, merchants []entity.Restaurant, now time.Time) error {
	seq := 0
	for _, m := range merchants {
		for month := 0; month < 3; month++ {
			seq++
			issued := now.AddDate(0, -month, -rng.Intn(5))
			amount := decimal.NewFromInt(int64(1500 + rng.Intn(4000)))
			inv := entity.Invoice{
				Number:       fmt.Sprintf("INV-%s-%04d", issued.Format("200601"), seq),
				Amount:       amount,
				Tax:          amount.Mul(decimal.NewFromFloat(0.07)).Round(2),
				Status:       entity.InvoicePaid,
				IssuedAt:     issued,
				DueAt:        issued.AddDate(0, 0, 15),
				RestaurantID: m.ID,
			}
			switch {
			case month == 0:
				inv.Status = entity.InvoicePending
			case month == 1 && m.Status == entity.RestaurantSuspended:
				// past due
				inv.Status = entity.InvoicePending
			case month == 2 && seq%5 == 0:
				inv.Status = entity.InvoiceCancelled
			}
			if inv.Status == entity.InvoicePaid {
				paid := inv.DueAt.AddDate(0, 0, -3)
				inv.PaidAt = &paid
			}
			if err := tx.Create(&inv).Error; err != nil {
				return fmt.Errorf("seed invoice: %w", err)
			}
		}
	}
	return nil
}

func seedPromotions(tx *gorm.DB, merchants []entity.Restaurant, now time.Time) error {
	start := now.AddDate(0, 0, -14)
	end := now.AddDate(0, 1, 0)
	expired := now.AddDate(0, 0, -1)
	mid := merchants[0].ID
	promos := []entity.Promotion{
		{Code: "WELCOME10", Description: "10% off first order", Type: entity.PromoPercent, Value: decimal.NewFromInt(10), MinOrder: decimal.NewFromInt(100), StartAt: &start, EndAt: &end, Active: true, UsageLimit: 1000, UsageCount: 124},
		{Code: "FREESHIP", Description: "Free delivery", Type: entity.PromoFreeDelivery, MinOrder: decimal.NewFromInt(200), StartAt: &start, EndAt: &end, Active: true},
		{Code: "THAI50", Description: "50 off Thai food", Type: entity.PromoFixed, Value: decimal.NewFromInt(50), MinOrder: decimal.NewFromInt(300), StartAt: &start, EndAt: &end, Active: true, RestaurantID: &mid},
		{Code: "SUMMER20", Description: "Summer sale", Type: entity.PromoPercent, Value: decimal.NewFromInt(20), StartAt: &start, EndAt: &expired, Active: false, UsageCount: 310},
	}
	if err := tx.Create(&promos).Error; err != nil {
		return fmt.Errorf("seed promotions: %w", err)
	}
	return nil
}
