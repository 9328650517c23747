package services

import (
	"fmt"

	"dashboard/entity"
	"dashboard/repository"
)

type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: repo}
}

type RestaurantListReq struct {
	repository.RestaurantFilter
	Page  int
	Limit int
}

func (s *RestaurantService) List(req RestaurantListReq) ([]entity.Restaurant, int, int, int64, error) {
	if req.Status != "" && !entity.ValidRestaurantStatus(req.Status) {
		return nil, 0, 0, 0, invalid("unknown merchant status %q", req.Status)
	}
	page, limit := clampPage(req.Page, req.Limit)
	items, total, err := s.Repo.List(req.RestaurantFilter, page, limit)
	if err != nil {
		return nil, 0, 0, 0, wrapDB("list merchants", err)
	}
	return items, page, limit, total, nil
}

func (s *RestaurantService) Detail(id uint) (*entity.Restaurant, error) {
	r, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, wrapDB(fmt.Sprintf("merchant %d", id), err)
	}
	return r, nil
}

func (s *RestaurantService) UpdateStatus(id uint, status string) (*entity.Restaurant, error) {
	if !entity.ValidRestaurantStatus(status) {
		return nil, invalid("unknown merchant status %q", status)
	}
	if err := s.Repo.UpdateStatus(id, status); err != nil {
		return nil, wrapDB(fmt.Sprintf("merchant %d", id), err)
	}
	return s.Detail(id)
}

func (s *RestaurantService) Menus(id uint) ([]entity.Menu, error) {
	if _, err := s.Detail(id); err != nil {
		return nil, err
	}
	menus, err := s.Repo.Menus(id)
	if err != nil {
		return nil, wrapDB("load menus", err)
	}
	return menus, nil
}

// IngredientView adds the derived low-stock flag.
type IngredientView struct {
	entity.Ingredient
	LowStock bool `json:"lowStock"`
}

func (s *RestaurantService) Ingredients(id uint, lowStockOnly bool) ([]IngredientView, error) {
	if _, err := s.Detail(id); err != nil {
		return nil, err
	}
	ings, err := s.Repo.Ingredients(id)
	if err != nil {
		return nil, wrapDB("load ingredients", err)
	}
	out := make([]IngredientView, 0, len(ings))
	for _, i := range ings {
		low := i.LowStock()
		if lowStockOnly && !low {
			continue
		}
		out = append(out, IngredientView{Ingredient: i, LowStock: low})
	}
	return out, nil
}

func (s *RestaurantService) SetMenuAvailability(menuID uint, available bool) error {
	if err := s.Repo.SetMenuAvailable(menuID, available); err != nil {
		return wrapDB(fmt.Sprintf("menu %d", menuID), err)
	}
	return nil
}
