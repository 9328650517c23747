package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"dashboard/configs"
	"dashboard/repository"

	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database. Seeded data is dated relative to now.
func newTestDB(t *testing.T, seed bool) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := configs.OpenDatabase(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := configs.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := configs.SeedAdmin(db, "admin@test.local", "admin1234"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if seed {
		if err := configs.SeedMockData(db, time.Now()); err != nil {
			t.Fatalf("seed mock: %v", err)
		}
	}
	return db
}

type testRepos struct {
	orders   *repository.OrderRepository
	invoices *repository.InvoiceRepository
	rests    *repository.RestaurantRepository
	users    *repository.UserRepository
}

func reposFor(db *gorm.DB) testRepos {
	return testRepos{
		orders:   repository.NewOrderRepository(db),
		invoices: repository.NewInvoiceRepository(db),
		rests:    repository.NewRestaurantRepository(db),
		users:    repository.NewUserRepository(db),
	}
}
