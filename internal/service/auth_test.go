package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/repository"
	"lingua-campus/internal/repository/mocks"
	"lingua-campus/internal/service"
)

// --- 测试 Login 方法 ---

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange: 准备 Mock 对象和已注册的用户
	mockUserRepo := new(mocks.UserRepository)
	jwtSecret := "very-secret-key"
	authService, err := service.NewAuthService(mockUserRepo, jwtSecret, 1)
	require.NoError(t, err, "创建 AuthService 不应失败")

	ctx := context.Background()
	username := "amelie"
	password := "StrongPass123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	mockUserRepo.On("FindByUsername", ctx, username).
		Return(&domain.User{ID: 42, Username: username, Password: string(hashed)}, nil).
		Once()

	// Act
	token, err := authService.Login(ctx, username, password)

	// Assert: token 有效且携带正确的 user_id
	require.NoError(t, err, "正确的凭证应登录成功")
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	require.NoError(t, err, "签发的 token 应能用同一密钥验证")
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Contains(t, claims, "exp")

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, err := service.NewAuthService(mockUserRepo, "secret", 1)
	require.NoError(t, err)

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("CorrectPass"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUserRepo.On("FindByUsername", ctx, "amelie").
		Return(&domain.User{ID: 42, Username: "amelie", Password: string(hashed)}, nil).
		Once()

	// Act
	token, err := authService.Login(ctx, "amelie", "WrongPass")

	// Assert
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	assert.Empty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	// Arrange: 用户不存在时返回与密码错误相同的业务错误
	mockUserRepo := new(mocks.UserRepository)
	authService, err := service.NewAuthService(mockUserRepo, "secret", 1)
	require.NoError(t, err)

	ctx := context.Background()
	mockUserRepo.On("FindByUsername", ctx, "fantome").
		Return(nil, repository.ErrUserNotFound).
		Once()

	// Act
	token, err := authService.Login(ctx, "fantome", "whatever")

	// Assert: 不泄露账号是否存在
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	assert.Empty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, err := service.NewAuthService(mockUserRepo, "secret", 1)
	require.NoError(t, err)

	ctx := context.Background()
	mockUserRepo.On("FindByUsername", ctx, "amelie").
		Return(nil, errors.New("connection refused")).
		Once()

	// Act
	token, err := authService.Login(ctx, "amelie", "whatever")

	// Assert
	assert.ErrorIs(t, err, service.ErrInternalServer)
	assert.Empty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestNewAuthService_EmptySecretRejected(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)

	authService, err := service.NewAuthService(mockUserRepo, "", 1)

	assert.Error(t, err, "空密钥应拒绝创建服务")
	assert.Nil(t, authService)
}
