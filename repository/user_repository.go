package repository

import (
	"strings"

	"dashboard/entity"

	"gorm.io/gorm"
)

// UserRepository talks to the users and roles tables only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

type UserFilter struct {
	Search string
	RoleID uint
	Status string
}

func (f UserFilter) scope(db *gorm.DB) *gorm.DB {
	if f.RoleID != 0 {
		db = db.Where("role_id = ?", f.RoleID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}
	return db
}

func (r *UserRepository) List(f UserFilter, page, limit int) ([]entity.User, int64, error) {
	var total int64
	if err := f.scope(r.DB.Model(&entity.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.User
	err := f.scope(r.DB.Model(&entity.User{})).Preload("Role").
		Order("id ASC").Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PurgeDeleted drops soft-deleted users holding email so the unique index frees it.
func (r *UserRepository) PurgeDeleted(email string) error {
	return r.DB.Unscoped().
		Where("email = ? AND deleted_at IS NOT NULL", email).
		Delete(&entity.User{}).Error
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	res := r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Delete(userID uint) error {
	res := r.DB.Delete(&entity.User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Count(&n).Error
	return n, err
}

// ---------------- Roles ----------------

func (r *UserRepository) Roles() ([]entity.Role, error) {
	var out []entity.Role
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) RoleByID(id uint) (*entity.Role, error) {
	var role entity.Role
	if err := r.DB.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) RoleUserCounts() (map[uint]int64, error) {
	var rows []struct {
		RoleID uint
		N      int64
	}
	if err := r.DB.Model(&entity.User{}).Select("role_id, COUNT(*) AS n").Group("role_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.RoleID] = row.N
	}
	return out, nil
}
