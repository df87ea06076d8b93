package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lingua-campus/internal/service"
)

// AuthHandler 封装了用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	if authService == nil {
		panic("AuthService cannot be nil for AuthHandler")
	}
	return &AuthHandler{authService: authService}
}

// LoginRequest 定义登录请求的结构体
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 定义登录成功的响应结构体
type LoginResponse struct {
	Token string `json:"token"`
}

// Login 处理用户登录请求
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	// 1. 绑定并验证输入 JSON
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: username and password are required")
		return
	}
	logCtx := logrus.WithField("username", req.Username)

	// 2. 调用 Service 层验证凭证并签发 token
	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			logCtx.Warn("Handler.Login: Authentication failed")
			ErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
		} else {
			logCtx.WithError(err).Error("Handler.Login: Login failed via service")
			ErrorResponse(c, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	// 3. 成功响应
	logCtx.Info("Handler.Login: User logged in successfully")
	SuccessResponse(c, http.StatusOK, LoginResponse{Token: token})
}
