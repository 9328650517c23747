package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard/entity"
	"dashboard/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PromotionService struct {
	DB *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{DB: db}
}

type PromotionFilter struct {
	Active     *bool
	MerchantID uint
	// RunningAt keeps only promotions usable at that instant.
	RunningAt *time.Time
}

// PromotionInput carries create and partial update values. Nil fields are left unchanged on update.
type PromotionInput struct {
	Code         *string          `json:"code"`
	Description  *string          `json:"description"`
	Type         *string          `json:"type"`
	Value        *decimal.Decimal `json:"value"`
	MinOrder     *decimal.Decimal `json:"minOrder"`
	StartAt      *string          `json:"startAt"`
	EndAt        *string          `json:"endAt"`
	Active       *bool            `json:"active"`
	UsageLimit   *int             `json:"usageLimit"`
	RestaurantID *uint            `json:"restaurantId"`
}

func (s *PromotionService) List(f PromotionFilter) ([]entity.Promotion, error) {
	q := s.DB.Model(&entity.Promotion{})
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if f.MerchantID != 0 {
		q = q.Where("restaurant_id = ? OR restaurant_id IS NULL", f.MerchantID)
	}
	var out []entity.Promotion
	if err := q.Order("id DESC").Find(&out).Error; err != nil {
		return nil, wrapDB("list promotions", err)
	}
	if f.RunningAt != nil {
		running := out[:0]
		for _, p := range out {
			if p.Running(*f.RunningAt) {
				running = append(running, p)
			}
		}
		out = running
	}
	return out, nil
}

func (s *PromotionService) Create(in PromotionInput) (*entity.Promotion, error) {
	if in.Code == nil || strings.TrimSpace(*in.Code) == "" {
		return nil, invalid("code is required")
	}
	if in.Type == nil {
		return nil, invalid("type is required")
	}
	p := entity.Promotion{Active: true, Value: decimal.Zero, MinOrder: decimal.Zero}
	if err := applyPromotion(&p, in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(p.Code, 0); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, wrapDB("create promotion", err)
	}
	return &p, nil
}

func (s *PromotionService) Update(id uint, in PromotionInput) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := s.DB.First(&p, id).Error; err != nil {
		return nil, wrapDB(fmt.Sprintf("promotion %d", id), err)
	}
	if err := applyPromotion(&p, in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(p.Code, p.ID); err != nil {
		return nil, err
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, wrapDB("update promotion", err)
	}
	return &p, nil
}

// Delete removes the promotion for good.
func (s *PromotionService) Delete(id uint) error {
	res := s.DB.Unscoped().Delete(&entity.Promotion{}, id)
	if res.Error != nil {
		return wrapDB("delete promotion", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("promotion %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *PromotionService) ensureUniqueCode(code string, selfID uint) error {
	var other entity.Promotion
	err := s.DB.Unscoped().Where("code = ? AND id <> ?", code, selfID).First(&other).Error
	if err == nil {
		return fmt.Errorf("promotion code %s: %w", code, ErrConflict)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return wrapDB("check promotion code", err)
}

func applyPromotion(p *entity.Promotion, in PromotionInput) error {
	if in.Code != nil {
		p.Code = strings.ToUpper(strings.TrimSpace(*in.Code))
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Value != nil {
		p.Value = *in.Value
	}
	if in.MinOrder != nil {
		p.MinOrder = *in.MinOrder
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if in.UsageLimit != nil {
		p.UsageLimit = *in.UsageLimit
	}
	if in.RestaurantID != nil {
		if *in.RestaurantID == 0 {
			p.RestaurantID = nil
		} else {
			id := *in.RestaurantID
			p.RestaurantID = &id
		}
	}
	if in.StartAt != nil {
		t, err := utils.ParseDateFlexible(*in.StartAt)
		if err != nil {
			return invalid("invalid startAt")
		}
		p.StartAt = t
	}
	if in.EndAt != nil {
		t, err := utils.ParseDateFlexible(*in.EndAt)
		if err != nil {
			return invalid("invalid endAt")
		}
		p.EndAt = t
	}
	return validatePromotion(p)
}

func validatePromotion(p *entity.Promotion) error {
	if !entity.ValidPromoType(p.Type) {
		return invalid("unknown promotion type %q", p.Type)
	}
	if p.Type == entity.PromoPercent && (p.Value.LessThan(decimal.NewFromInt(1)) || p.Value.GreaterThan(decimal.NewFromInt(100))) {
		return invalid("value for percentage promo must be between 1 and 100")
	}
	if p.Type == entity.PromoFixed && !p.Value.IsPositive() {
		return invalid("value for fixed promo must be positive")
	}
	if p.MinOrder.IsNegative() {
		return invalid("minOrder must not be negative")
	}
	if p.UsageLimit < 0 {
		return invalid("usageLimit must not be negative")
	}
	if p.StartAt != nil && p.EndAt != nil && !p.EndAt.After(*p.StartAt) {
		return invalid("endAt must be after startAt")
	}
	return nil
}
