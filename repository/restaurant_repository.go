package repository

import (
	"strings"

	"dashboard/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

type RestaurantFilter struct {
	Status   string
	Category string
	Search   string
}

func (f RestaurantFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		db = db.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(owner_name) LIKE ?", like, like, like)
	}
	return db
}

func (r *RestaurantRepository) List(f RestaurantFilter, page, limit int) ([]entity.Restaurant, int64, error) {
	var total int64
	if err := f.scope(r.DB.Model(&entity.Restaurant{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Restaurant
	err := f.scope(r.DB.Model(&entity.Restaurant{})).
		Order("id ASC").Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// FindAll returns every merchant ordered by id.
func (r *RestaurantRepository) FindAll() ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Order("id ASC").Find(&rests).Error
	return rests, err
}

// Names maps merchant id to name.
func (r *RestaurantRepository) Names() (map[uint]string, error) {
	rests, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(rests))
	for _, m := range rests {
		out[m.ID] = m.Name
	}
	return out, nil
}

// FindByID loads a merchant with its menus.
func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("Menus").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) UpdateStatus(id uint, status string) error {
	res := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RestaurantRepository) Menus(restID uint) ([]entity.Menu, error) {
	var out []entity.Menu
	err := r.DB.Preload("Ingredients").Where("restaurant_id = ?", restID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) Ingredients(restID uint) ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	q := r.DB.Model(&entity.Ingredient{})
	if restID != 0 {
		q = q.Where("restaurant_id = ?", restID)
	}
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) SetMenuAvailable(menuID uint, available bool) error {
	res := r.DB.Model(&entity.Menu{}).Where("id = ?", menuID).Update("available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RestaurantRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := r.DB.Model(&entity.Restaurant{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
