package controllers

import (
	"dashboard/pkg/resp"
	"dashboard/services"
	"dashboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthController struct {
	Svc *services.AuthService
	Log *zap.Logger
}

func NewAuthController(svc *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{Svc: svc, Log: log}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	pair, err := a.Svc.Login(req.Email, req.Password)
	if err != nil {
		fail(c, a.Log, err)
		return
	}
	a.Log.Info("login", zap.Uint("userId", pair.User.ID))
	resp.OK(c, pair)
}

// POST /auth/refresh
func (a *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	pair, err := a.Svc.Refresh(req.RefreshToken)
	if err != nil {
		resp.Unauthorized(c, "invalid refresh token")
		return
	}
	resp.OK(c, pair)
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		fail(c, a.Log, err)
		return
	}
	resp.OK(c, user)
}
