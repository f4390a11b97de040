package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/service"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册讲师账号
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tutor, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, tutor)
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, tokens)
}

// Logout 登出（将当前 Access Token 加入黑名单）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me 获取当前讲师信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	tutorID, ok := MustGetTutorID(c)
	if !ok {
		return
	}

	tutor, err := h.authSvc.Me(c.Request.Context(), tutorID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, tutor)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 11002, "该邮箱已注册")
	case errors.Is(err, service.ErrRegistrationClosed):
		response.Error(c, http.StatusForbidden, 11003, "注册已关闭")
	case errors.Is(err, service.ErrTutorNotFound):
		response.NotFound(c, 11004, "账号不存在")
	default:
		response.InternalError(c)
	}
}
