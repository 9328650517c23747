package services

import (
	"fmt"
	"net/mail"
	"strings"

	"dashboard/entity"
	"dashboard/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB   *gorm.DB
	Repo *repository.UserRepository
}

func NewUserService(db *gorm.DB, repo *repository.UserRepository) *UserService {
	return &UserService{DB: db, Repo: repo}
}

type UserListReq struct {
	repository.UserFilter
	Page  int
	Limit int
}

type CreateUserReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	RoleID      uint   `json:"roleId" binding:"required"`
}

type UpdateUserReq struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Status      *string `json:"status"`
	RoleID      *uint   `json:"roleId"`
}

type RoleInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// RoleView is a role with how many users hold it.
type RoleView struct {
	entity.Role
	UserCount int64 `json:"userCount"`
}

func (s *UserService) List(req UserListReq) ([]entity.User, int, int, int64, error) {
	page, limit := clampPage(req.Page, req.Limit)
	items, total, err := s.Repo.List(req.UserFilter, page, limit)
	if err != nil {
		return nil, 0, 0, 0, wrapDB("list users", err)
	}
	return items, page, limit, total, nil
}

func (s *UserService) Create(req CreateUserReq) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("invalid email")
	}
	if len(req.Password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}
	if err := s.Repo.PurgeDeleted(email); err != nil {
		return nil, wrapDB("release deleted email", err)
	}
	count, err := s.Repo.CountByEmail(email)
	if err != nil {
		return nil, wrapDB("check email", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("email %s already registered: %w", email, ErrConflict)
	}
	if _, err := s.Repo.RoleByID(req.RoleID); err != nil {
		return nil, wrapDB(fmt.Sprintf("role %d", req.RoleID), err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Status:      entity.UserActive,
		RoleID:      req.RoleID,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, wrapDB("create user", err)
	}
	return s.Repo.FindByID(user.ID)
}

func (s *UserService) Update(id uint, req UpdateUserReq) (*entity.User, error) {
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Status != nil {
		if *req.Status != entity.UserActive && *req.Status != entity.UserInactive {
			return nil, invalid("unknown user status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.RoleID != nil {
		if _, err := s.Repo.RoleByID(*req.RoleID); err != nil {
			return nil, wrapDB(fmt.Sprintf("role %d", *req.RoleID), err)
		}
		updates["role_id"] = *req.RoleID
	}
	if len(updates) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.Repo.Update(id, updates); err != nil {
		return nil, wrapDB(fmt.Sprintf("user %d", id), err)
	}
	return s.Repo.FindByID(id)
}

func (s *UserService) Delete(id uint) error {
	return wrapDB(fmt.Sprintf("user %d", id), s.Repo.Delete(id))
}

// ---------------- Roles ----------------

func (s *UserService) Roles() ([]RoleView, error) {
	roles, err := s.Repo.Roles()
	if err != nil {
		return nil, wrapDB("list roles", err)
	}
	counts, err := s.Repo.RoleUserCounts()
	if err != nil {
		return nil, wrapDB("count role users", err)
	}
	out := make([]RoleView, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleView{Role: r, UserCount: counts[r.ID]})
	}
	return out, nil
}

func (s *UserService) CreateRole(in RoleInput) (*entity.Role, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, invalid("name is required")
	}
	var n int64
	if err := s.DB.Unscoped().Model(&entity.Role{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, wrapDB("check role name", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("role %s: %w", name, ErrConflict)
	}
	role := &entity.Role{Name: name, Description: in.Description, Permissions: in.Permissions}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	if err := s.DB.Create(role).Error; err != nil {
		return nil, wrapDB("create role", err)
	}
	return role, nil
}

func (s *UserService) UpdateRole(id uint, in RoleInput) (*entity.Role, error) {
	role, err := s.Repo.RoleByID(id)
	if err != nil {
		return nil, wrapDB(fmt.Sprintf("role %d", id), err)
	}
	if name := strings.ToLower(strings.TrimSpace(in.Name)); name != "" && name != role.Name {
		if role.Name == "admin" {
			return nil, invalid("the admin role cannot be renamed")
		}
		var n int64
		if err := s.DB.Model(&entity.Role{}).Where("name = ? AND id <> ?", name, id).Count(&n).Error; err != nil {
			return nil, wrapDB("check role name", err)
		}
		if n > 0 {
			return nil, fmt.Errorf("role %s: %w", name, ErrConflict)
		}
		role.Name = name
	}
	role.Description = in.Description
	if in.Permissions != nil {
		role.Permissions = in.Permissions
	}
	if err := s.DB.Save(role).Error; err != nil {
		return nil, wrapDB("update role", err)
	}
	return role, nil
}

// DeleteRole refuses while users still hold the role.
func (s *UserService) DeleteRole(id uint) error {
	role, err := s.Repo.RoleByID(id)
	if err != nil {
		return wrapDB(fmt.Sprintf("role %d", id), err)
	}
	if role.Name == "admin" {
		return invalid("the admin role cannot be deleted")
	}
	var n int64
	if err := s.DB.Model(&entity.User{}).Where("role_id = ?", id).Count(&n).Error; err != nil {
		return wrapDB("count role users", err)
	}
	if n > 0 {
		return fmt.Errorf("role %s has %d users: %w", role.Name, n, ErrConflict)
	}
	// hard delete so the name can be reused
	return wrapDB("delete role", s.DB.Unscoped().Delete(&entity.Role{}, id).Error)
}
