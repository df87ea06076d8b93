package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpHandler "lingua-campus/internal/handler/http"
	"lingua-campus/internal/repository"
	"lingua-campus/internal/repository/mocks"
	"lingua-campus/internal/service"
)

// setupRoomsRouter 构建测试路由：注入假的认证中间件，直接写入 user_id。
func setupRoomsRouter(enrollmentRepo repository.EnrollmentRepository, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	directory := service.NewRoomDirectoryService(enrollmentRepo)
	handler := httpHandler.NewRoomHandler(directory)

	authStub := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	router.GET("/api/rooms", authStub, handler.ListRooms)
	return router
}

func TestRoomHandler_ListRooms_Success(t *testing.T) {
	// Arrange: 用户报名了 python/django
	mockEnrollmentRepo := new(mocks.EnrollmentRepository)
	mockEnrollmentRepo.On("DistinctChannelPairs", mock.Anything, uint(42)).
		Return([]repository.ChannelPair{{Domain: "python", Area: "django"}}, nil).
		Once()
	router := setupRoomsRouter(mockEnrollmentRepo, 42)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/rooms", nil)
	router.ServeHTTP(w, req)

	// Assert: 全局房间在前，随后是报名房间
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 2)
	assert.Equal(t, "general:general:*", rooms[0]["key"])
	assert.Equal(t, "Salon général", rooms[0]["title"])
	assert.Nil(t, rooms[0]["domain"])
	assert.Equal(t, "domain:python:django", rooms[1]["key"])
	assert.Equal(t, "python · django", rooms[1]["title"])
	assert.Nil(t, rooms[1]["description"], "领域房间没有描述文案")

	mockEnrollmentRepo.AssertExpectations(t)
}

func TestRoomHandler_ListRooms_RepositoryError(t *testing.T) {
	// Arrange
	mockEnrollmentRepo := new(mocks.EnrollmentRepository)
	mockEnrollmentRepo.On("DistinctChannelPairs", mock.Anything, uint(1)).
		Return(nil, errors.New("connection refused")).
		Once()
	router := setupRoomsRouter(mockEnrollmentRepo, 1)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/rooms", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	mockEnrollmentRepo.AssertExpectations(t)
}

func TestRoomHandler_ListRooms_MissingUser(t *testing.T) {
	// Arrange: 中间件没有写入 user_id
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockEnrollmentRepo := new(mocks.EnrollmentRepository)
	directory := service.NewRoomDirectoryService(mockEnrollmentRepo)
	handler := httpHandler.NewRoomHandler(directory)
	router.GET("/api/rooms", handler.ListRooms)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/rooms", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockEnrollmentRepo.AssertNotCalled(t, "DistinctChannelPairs")
}
