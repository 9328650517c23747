package configs

import (
	"strings"
	"testing"
	"time"

	"dashboard/entity"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Port != "8000" || cfg.JWTTTL != 15*time.Minute || cfg.RefreshTTL != 168*time.Hour {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.SeedMock || cfg.MockLatency != 0 || cfg.LiveInterval != 30*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "5m")
	t.Setenv("MOCK_LATENCY", "300ms")
	t.Setenv("SEED_MOCK", "false")
	t.Setenv("ADMIN_EMAIL", " Boss@Example.COM ")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.JWTTTL != 5*time.Minute || cfg.MockLatency != 300*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SeedMock {
		t.Error("SEED_MOCK=false ignored")
	}
	if cfg.AdminEmail != "boss@example.com" {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestSeedMockDataDeterministic(t *testing.T) {
	db, err := OpenDatabase("file:seedtest?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	if err := SeedAdmin(db, "admin@test.local", "admin1234"); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	if err := SeedMockData(db, now); err != nil {
		t.Fatal(err)
	}
	// second run is a no-op
	if err := SeedMockData(db, now); err != nil {
		t.Fatal(err)
	}

	counts := map[string]struct {
		model any
		want  int64
	}{
		"merchants":  {&entity.Restaurant{}, 6},
		"orders":     {&entity.Order{}, 150},
		"invoices":   {&entity.Invoice{}, 18},
		"promotions": {&entity.Promotion{}, 4},
		"users":      {&entity.User{}, 7},
		"roles":      {&entity.Role{}, 3},
		"menus":      {&entity.Menu{}, 30},
	}
	for name, c := range counts {
		var n int64
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			t.Fatal(err)
		}
		if n != c.want {
			t.Errorf("%s = %d, want %d", name, n, c.want)
		}
	}

	var first entity.Order
	if err := db.Order("id").First(&first).Error; err != nil {
		t.Fatal(err)
	}
	if first.OrderNumber != "ORD-00001" || first.CustomerID == "" {
		t.Errorf("first order = %+v", first)
	}
	if CustomerID(3) != CustomerID(3) || CustomerID(3) == CustomerID(4) {
		t.Error("CustomerID must be stable and distinct")
	}
}

func TestSeedAdminLookupError(t *testing.T) {
	db, err := OpenDatabase("file:seedlookup?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	if err := db.Migrator().DropTable(&entity.User{}); err != nil {
		t.Fatal(err)
	}
	err = SeedAdmin(db, "admin@test.local", "admin1234")
	if err == nil || !strings.Contains(err.Error(), "look up admin") {
		t.Errorf("SeedAdmin without users table: err = %v", err)
	}
}
