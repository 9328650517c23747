package controllers

import (
	"dashboard/pkg/resp"
	"dashboard/repository"
	"dashboard/services"
	"dashboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	Svc *services.UserService
	Log *zap.Logger
}

func NewUserController(svc *services.UserService, log *zap.Logger) *UserController {
	return &UserController{Svc: svc, Log: log}
}

// GET /admin/users?q=&roleId=&status=&page=&limit=
func (uc *UserController) List(c *gin.Context) {
	roleID, ok := queryUint(c, "roleId")
	if !ok {
		return
	}
	items, page, limit, total, err := uc.Svc.List(services.UserListReq{
		UserFilter: repository.UserFilter{Search: c.Query("q"), RoleID: roleID, Status: c.Query("status")},
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	})
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.Paged(c, items, page, limit, total)
}

// POST /admin/users
func (uc *UserController) Create(c *gin.Context) {
	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := uc.Svc.Create(req)
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.Created(c, u)
}

// PATCH /admin/users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := uc.Svc.Update(id, req)
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.OK(c, u)
}

// DELETE /admin/users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id == utils.CurrentUserID(c) {
		resp.BadRequest(c, "cannot delete yourself")
		return
	}
	if err := uc.Svc.Delete(id); err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}

// GET /admin/roles
func (uc *UserController) Roles(c *gin.Context) {
	roles, err := uc.Svc.Roles()
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.OK(c, gin.H{"items": roles})
}

// POST /admin/roles
func (uc *UserController) CreateRole(c *gin.Context) {
	var in services.RoleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := uc.Svc.CreateRole(in)
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.Created(c, r)
}

// PUT /admin/roles/:id
func (uc *UserController) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RoleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := uc.Svc.UpdateRole(id, in)
	if err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.OK(c, r)
}

// DELETE /admin/roles/:id
func (uc *UserController) DeleteRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := uc.Svc.DeleteRole(id); err != nil {
		fail(c, uc.Log, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
