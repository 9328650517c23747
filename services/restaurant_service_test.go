package services

import (
	"errors"
	"testing"

	"dashboard/entity"
	"dashboard/repository"
)

func TestRestaurantService(t *testing.T) {
	db := newTestDB(t, true)
	svc := NewRestaurantService(repository.NewRestaurantRepository(db))

	items, page, limit, total, err := svc.List(RestaurantListReq{RestaurantFilter: repository.RestaurantFilter{Status: entity.RestaurantActive}})
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 || len(items) != 4 || page != 1 || limit != 20 {
		t.Errorf("list = %d items, total %d, page %d, limit %d", len(items), total, page, limit)
	}
	if _, _, _, _, err := svc.List(RestaurantListReq{RestaurantFilter: repository.RestaurantFilter{Status: "closed"}}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad status: err = %v", err)
	}

	r, err := svc.UpdateStatus(items[0].ID, entity.RestaurantSuspended)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if r.Status != entity.RestaurantSuspended || len(r.Menus) != 5 {
		t.Errorf("merchant = %s with %d menus", r.Status, len(r.Menus))
	}
	if _, err := svc.UpdateStatus(999, entity.RestaurantActive); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing merchant: err = %v", err)
	}

	menus, err := svc.Menus(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(menus) != 5 || len(menus[0].Ingredients) != 2 {
		t.Errorf("menus = %d, ingredients on first = %d", len(menus), len(menus[0].Ingredients))
	}
	if err := svc.SetMenuAvailability(menus[0].ID, false); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetMenuAvailability(99999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing menu: err = %v", err)
	}

	all, err := svc.Ingredients(r.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	low, err := svc.Ingredients(r.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 || len(low) > len(all) {
		t.Errorf("ingredients = %d, low = %d", len(all), len(low))
	}
	for _, i := range low {
		if !i.LowStock || i.StockQty > i.ReorderLevel {
			t.Errorf("%s: stock %v reorder %v", i.Name, i.StockQty, i.ReorderLevel)
		}
	}
}
