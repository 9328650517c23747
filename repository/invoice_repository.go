package repository

import (
	"time"

	"dashboard/entity"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// FindAll returns invoices issued in [from, to] for a merchant (0 = all), newest first.
// Status is filtered by the caller since overdue is derived.
func (r *InvoiceRepository) FindAll(merchantID uint, from, to *time.Time) ([]entity.Invoice, error) {
	q := r.DB.Model(&entity.Invoice{}).Preload("Restaurant")
	if merchantID != 0 {
		q = q.Where("restaurant_id = ?", merchantID)
	}
	if from != nil {
		q = q.Where("issued_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("issued_at <= ?", to.UTC())
	}
	var out []entity.Invoice
	err := q.Order("issued_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *InvoiceRepository) FindByID(id uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := r.DB.Preload("Restaurant").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Invoice{}).Where("id = ?", id).Updates(updates).Error
}

func (r *InvoiceRepository) CountPending() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Invoice{}).Where("status = ?", entity.InvoicePending).Count(&n).Error
	return n, err
}
