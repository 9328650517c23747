package services

import (
	"fmt"

	"dashboard/entity"
	"dashboard/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo}
}

type OrderListReq struct {
	repository.OrderFilter
	Page  int
	Limit int
}

type OrderPage struct {
	Items []entity.Order `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

func (s *OrderService) List(req OrderListReq) (*OrderPage, error) {
	if req.Status != "" && !entity.ValidOrderStatus(req.Status) {
		return nil, invalid("unknown order status %q", req.Status)
	}
	page, limit := clampPage(req.Page, req.Limit)
	items, total, err := s.Repo.List(req.OrderFilter, page, limit)
	if err != nil {
		return nil, wrapDB("list orders", err)
	}
	return &OrderPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (s *OrderService) Detail(id uint) (*entity.Order, error) {
	o, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, wrapDB(fmt.Sprintf("order %d", id), err)
	}
	return o, nil
}
