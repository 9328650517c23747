package repository

import (
	"time"

	"dashboard/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderFilter narrows order queries. Zero values mean "any".
type OrderFilter struct {
	MerchantID uint
	Status     string
	CustomerID string
	From       *time.Time
	To         *time.Time
}

func (f OrderFilter) scope(db *gorm.DB) *gorm.DB {
	if f.MerchantID != 0 {
		db = db.Where("restaurant_id = ?", f.MerchantID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.CustomerID != "" {
		db = db.Where("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		db = db.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		db = db.Where("created_at <= ?", f.To.UTC())
	}
	return db
}

// FindAll returns every matching order, newest first. withItems preloads order items.
func (r *OrderRepository) FindAll(f OrderFilter, withItems bool) ([]entity.Order, error) {
	q := f.scope(r.DB.Model(&entity.Order{}))
	if withItems {
		q = q.Preload("Items")
	}
	var out []entity.Order
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// List returns one page of orders plus the total match count.
func (r *OrderRepository) List(f OrderFilter, page, limit int) ([]entity.Order, int64, error) {
	var total int64
	if err := f.scope(r.DB.Model(&entity.Order{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Order
	err := f.scope(r.DB.Model(&entity.Order{})).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusGuard moves an order from one status to another only if it is still in from.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
