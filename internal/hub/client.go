package hub

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
)

// 包级别的 WebSocket 常量
const (
	// DefaultSendTimeout 是单个对端写入的默认截止时间。
	DefaultSendTimeout = 5 * time.Second

	// 等待对端 Pong 的时间。
	pongWait = 60 * time.Second

	// Ping 周期，必须小于 pongWait。
	pingPeriod = (pongWait * 9) / 10

	// 对端入站消息的最大字节数。
	maxMessageSize = 4096

	// send 通道缓冲区大小；缓冲满即视为慢消费者。
	sendQueueSize = 256
)

var (
	// ErrPeerClosed 表示对端连接已关闭。
	ErrPeerClosed = errors.New("hub: peer connection closed")
	// ErrPeerBacklogged 表示对端发送缓冲已满，在截止时间内无法投递。
	ErrPeerBacklogged = errors.New("hub: peer send queue full")
)

// Client 把一条 gorilla/websocket 连接封装成 Hub 的 Peer。
// 写入走带缓冲的 send 通道由 WritePump 排空，读取由 ReadPump 驱动；
// 两个 pump 任何一个退出都会关闭连接并翻转 connected 标志。
type Client struct {
	conn    *websocket.Conn
	channel domain.ChannelDescriptor
	profile domain.PublicProfile

	send        chan []byte
	done        chan struct{}
	sendTimeout time.Duration
	connected   atomic.Bool
	closeOnce   sync.Once
}

// NewClient 创建 Client 实例。sendTimeout 非法时退回默认值。
func NewClient(conn *websocket.Conn, channel domain.ChannelDescriptor, profile domain.PublicProfile, sendTimeout time.Duration) *Client {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	c := &Client{
		conn:        conn,
		channel:     channel,
		profile:     profile,
		send:        make(chan []byte, sendQueueSize),
		done:        make(chan struct{}),
		sendTimeout: sendTimeout,
	}
	c.connected.Store(true)
	return c
}

// Channel 返回该客户端订阅的频道描述符。
func (c *Client) Channel() domain.ChannelDescriptor { return c.channel }

// Profile 返回连接建立时解析的用户公开投影。
func (c *Client) Profile() domain.PublicProfile { return c.profile }

// Connected 实现 Peer 接口。
func (c *Client) Connected() bool { return c.connected.Load() }

// Send 实现 Peer 接口：非阻塞投递到 send 通道。
// 连接已关闭或缓冲已满都视为发送失败，由 Hub 负责驱逐。
func (c *Client) Send(payload []byte) error {
	if !c.connected.Load() {
		return ErrPeerClosed
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrPeerBacklogged
	}
}

// CloseConn 实现 Peer 接口：标记断开并关闭底层连接，可重复调用。
func (c *Client) CloseConn() {
	c.closeOnce.Do(func() {
		c.connected.Store(false)
		close(c.done)
		_ = c.conn.Close()
	})
}

// ReadPump 持续从 WebSocket 读取文本帧并交给 onMessage，
// 读错误或连接关闭时调用 onClose 并退出。在调用方的 goroutine 中运行。
func (c *Client) ReadPump(onMessage func(raw []byte), onClose func()) {
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id":  c.profile.ID,
		"room_key": c.channel.Key(),
	})
	defer func() {
		c.CloseConn()
		onClose()
		logCtx.Info("readPump exited")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logCtx.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				logCtx.Debug("WebSocket connection closed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			logCtx.Debugf("Ignoring non-text message type: %d", messageType)
			continue
		}
		onMessage(raw)
	}
}

// WritePump 把 send 通道中的帧写入 WebSocket，并周期性发送 Ping。
// 写失败或超过发送截止时间都会终止连接。在自己的 goroutine 中运行。
func (c *Client) WritePump() {
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id":  c.profile.ID,
		"room_key": c.channel.Key(),
	})
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.CloseConn()
		logCtx.Info("writePump exited")
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.sendTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logCtx.WithError(err).Warn("Failed to write message to websocket")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.sendTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logCtx.WithError(err).Warn("Failed to send ping message")
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.sendTimeout))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
