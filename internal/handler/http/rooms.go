package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lingua-campus/internal/service"
)

// RoomHandler 封装了聊天房间目录相关的 HTTP 处理逻辑
type RoomHandler struct {
	directory *service.RoomDirectoryService
}

// NewRoomHandler 创建 RoomHandler 实例
func NewRoomHandler(directory *service.RoomDirectoryService) *RoomHandler {
	if directory == nil {
		panic("RoomDirectoryService cannot be nil for RoomHandler")
	}
	return &RoomHandler{directory: directory}
}

// ListRooms 返回认证用户可加入的房间列表 (全局房间永远第一个)。
// GET /api/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	// 1. 获取认证用户 ID
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	// 2. 调用目录服务
	rooms, err := h.directory.RoomsFor(c.Request.Context(), userID)
	if err != nil {
		logCtx.WithError(err).Error("Handler.ListRooms: Failed to resolve room directory")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to list rooms")
		return
	}

	logCtx.WithField("room_count", len(rooms)).Debug("Handler.ListRooms: Directory resolved")
	SuccessResponse(c, http.StatusOK, rooms)
}
