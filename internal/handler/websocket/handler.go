package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/hub"
	"lingua-campus/internal/service"
)

// 查询参数的长度上限，超过视为非法描述符输入
const maxChannelParamLen = 100

// ChatHandler 负责处理聊天 WebSocket 升级请求和订阅者的生命周期
type ChatHandler struct {
	upgrader    websocket.Upgrader
	hub         *hub.Hub
	directory   *service.RoomDirectoryService
	profiles    *service.ProfileService
	sendTimeout time.Duration
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(h *hub.Hub, directory *service.RoomDirectoryService, profiles *service.ProfileService, sendTimeout time.Duration) *ChatHandler {
	if h == nil {
		panic("Hub cannot be nil for ChatHandler")
	}
	if directory == nil {
		panic("RoomDirectoryService cannot be nil for ChatHandler")
	}
	if profiles == nil {
		panic("ProfileService cannot be nil for ChatHandler")
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// TODO: 生产环境应配置具体的允许来源
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &ChatHandler{
		upgrader:    upgrader,
		hub:         h,
		directory:   directory,
		profiles:    profiles,
		sendTimeout: sendTimeout,
	}
}

// inboundEnvelope 是客户端入站帧的信封：内容加可选的 options。
// options 中的未知 extra 字段原样透传。
type inboundEnvelope struct {
	Content string                 `json:"content"`
	Options *domain.MessageOptions `json:"options"`
}

// errorFrame 只发给出错的那一个客户端，绝不广播。
type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleConnection 处理聊天连接请求。
// URL 预期格式: /ws/chat?domain={domain}&area={area}
func (h *ChatHandler) HandleConnection(c *gin.Context) {
	// 1. 获取认证用户 ID (由 Auth 中间件设置)
	userIDAny, exists := c.Get("user_id")
	if !exists {
		logrus.Warn("WS Handler: User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("WS Handler: User ID in context is not uint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	// 2. 从查询参数构造频道描述符 (唯一的构造入口是 domain 工厂)
	domainParam := c.Query("domain")
	areaParam := c.Query("area")
	if !validChannelParam(domainParam) || !validChannelParam(areaParam) {
		logCtx.Warnf("WS Handler: Invalid channel parameters: domain=%q area=%q", domainParam, areaParam)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel parameters"})
		return
	}
	channel := domain.NewChannelDescriptor(domainParam, areaParam)
	logCtx = logCtx.WithField("room_key", channel.Key())

	// 3. 解析用户公开投影 (每条消息都携带，连接期间复用)
	profile, err := h.profiles.ProfileFor(c.Request.Context(), userID)
	if err != nil {
		logCtx.WithError(err).Error("WS Handler: Failed to resolve user profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	// 4. 校验加入权限：领域房间的 key 必须出现在用户的目录中
	allowed, err := h.directory.CanJoin(c.Request.Context(), userID, channel)
	if err != nil {
		logCtx.WithError(err).Error("WS Handler: Failed to authorize channel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate channel"})
		return
	}
	if !allowed {
		logCtx.Warn("WS Handler: Channel not joinable for this user")
		c.JSON(http.StatusForbidden, gin.H{"error": "Channel is not joinable for this user"})
		return
	}

	// 5. 升级 HTTP 连接到 WebSocket
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经发送了 HTTP 错误响应
		logCtx.WithError(err).Error("WS Handler: Failed to upgrade connection")
		return
	}
	logCtx.Info("WS Handler: Connection upgraded to WebSocket")

	// 6. 注册到 Hub
	client := hub.NewClient(conn, channel, profile, h.sendTimeout)
	if err := h.hub.Connect(c.Request.Context(), channel, client); err != nil {
		logCtx.WithError(err).Warn("WS Handler: Connect cancelled before registration")
		client.CloseConn()
		return
	}

	// 7. 启动写 pump 并立即推送历史快照 (连接后的第一帧必须是 history)
	go client.WritePump()
	if err := h.hub.SendHistory(channel, client); err != nil {
		// SendHistory 已经驱逐了该订阅者
		logCtx.WithError(err).Warn("WS Handler: History delivery failed")
		return
	}

	// 8. 在当前 goroutine 中运行读循环，连接关闭时注销
	client.ReadPump(
		func(raw []byte) { h.handleInbound(client, raw) },
		func() { h.hub.Disconnect(channel, client) },
	)
}

// handleInbound 解析入站帧，补全服务端字段后提交广播。
// 非法信封只回报给出错的客户端，不影响房间里的其他人。
func (h *ChatHandler) handleInbound(client *hub.Client, raw []byte) {
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id":  client.Profile().ID,
		"room_key": client.Channel().Key(),
	})

	var envelope inboundEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logCtx.WithError(err).Warn("WS Handler: Malformed message envelope")
		h.sendError(client, "Malformed message envelope")
		return
	}

	content := strings.TrimSpace(envelope.Content)
	if content == "" {
		logCtx.Warn("WS Handler: Empty message content")
		h.sendError(client, "Message content must not be empty")
		return
	}

	opts := domain.DefaultMessageOptions()
	if envelope.Options != nil {
		opts = *envelope.Options
	}

	msg := domain.NewConversationMessage(client.Channel(), content, client.Profile(), opts)
	h.hub.Broadcast(client.Channel(), msg)
}

// sendError 向单个客户端发送错误帧，投递失败时只记录日志。
func (h *ChatHandler) sendError(client *hub.Client, message string) {
	payload, err := json.Marshal(errorFrame{Type: "error", Message: message})
	if err != nil {
		return
	}
	if err := client.Send(payload); err != nil {
		logrus.WithError(err).Debug("WS Handler: Failed to deliver error frame")
	}
}

// validChannelParam 拒绝过长或包含 key 分隔符的参数。
func validChannelParam(v string) bool {
	return len(v) <= maxChannelParamLen && !strings.Contains(v, ":")
}
