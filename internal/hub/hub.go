package hub

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
)

// 服务端到客户端的帧类型
const (
	FrameTypeHistory = "history" // 连接建立后恰好发送一次
	FrameTypeMessage = "message" // 每次广播发送一次
)

// Frame 是 WebSocket 下行帧的统一信封。
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// RoomStat 是单个房间的一次占用采样。
type RoomStat struct {
	Key         string
	Connections int
	Messages    int64
}

// Hub 是会话扇出管理器：负责订阅者的注册/注销、
// 新加入者的历史快照投递，以及带单点故障隔离的广播。
//
// 房间历史和订阅者集合是仅有的共享可变状态，全部由 mu 串行化。
// 锁只保护快照和变更，绝不跨网络 I/O 持有。
type Hub struct {
	mu       sync.Mutex
	history  *HistoryRing
	registry *SubscriberRegistry
	// 自进程启动以来每个房间广播的消息数，供周期采样读取
	messageCount map[string]int64
}

// NewHub 创建 Hub 实例；historySize 决定每个房间保留的消息条数。
func NewHub(historySize int) *Hub {
	return &Hub{
		history:      NewHistoryRing(historySize),
		registry:     NewSubscriberRegistry(),
		messageCount: make(map[string]int64),
	}
}

// Connect 把订阅者注册到频道，成功后该房间的连接数恰好加一。
// 调用方取消时注册表保持原样。
func (h *Hub) Connect(ctx context.Context, ch domain.ChannelDescriptor, p Peer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := ch.Key()

	h.mu.Lock()
	h.registry.Add(key, p)
	count := h.registry.Count(key)
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room_key":    key,
		"connections": count,
	}).Info("Subscriber registered")
	return nil
}

// Disconnect 把订阅者从频道注销。幂等：订阅者已被驱逐或从未注册时是 no-op。
func (h *Hub) Disconnect(ch domain.ChannelDescriptor, p Peer) {
	key := ch.Key()

	h.mu.Lock()
	h.registry.Remove(key, p)
	count := h.registry.Count(key)
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room_key":    key,
		"connections": count,
	}).Info("Subscriber deregistered")
}

// ConnectionCount 返回频道当前的活跃订阅者数量。
func (h *Hub) ConnectionCount(ch domain.ChannelDescriptor) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registry.Count(ch.Key())
}

// Broadcast 把消息追加到房间历史，然后推送给快照时刻注册的每个订阅者。
//
// 追加和快照在锁内完成，房间内的全序由追加顺序定义；
// 负载只编码一次，所有对端共享同一份字节；
// 发送在锁外进行，单个对端的失败只会驱逐它自己，广播本身永不失败。
func (h *Hub) Broadcast(ch domain.ChannelDescriptor, msg *domain.ConversationMessage) {
	key := ch.Key()

	h.mu.Lock()
	h.history.Append(key, msg)
	h.messageCount[key]++
	peers := h.registry.Snapshot(key)
	h.mu.Unlock()

	if len(peers) == 0 {
		return
	}

	payload, err := json.Marshal(Frame{Type: FrameTypeMessage, Payload: msg})
	if err != nil {
		// 对于合法构造的消息不应发生；发生时丢弃本次投递但历史已保留
		logrus.WithError(err).WithField("room_key", key).Error("Failed to encode broadcast frame")
		return
	}

	var stale []Peer
	for _, p := range peers {
		if !p.Connected() {
			stale = append(stale, p)
			continue
		}
		if err := p.Send(payload); err != nil {
			logrus.WithError(err).WithField("room_key", key).Warn("Peer send failed during broadcast, marking stale")
			stale = append(stale, p)
		}
	}

	if len(stale) > 0 {
		h.mu.Lock()
		h.registry.Prune(key, stale)
		h.mu.Unlock()
		for _, p := range stale {
			p.CloseConn()
		}
		logrus.WithFields(logrus.Fields{
			"room_key": key,
			"evicted":  len(stale),
		}).Info("Stale subscribers pruned after broadcast")
	}
}

// SendHistory 把房间当前的历史快照作为单独的帧类型推送给一个订阅者。
// 投递失败只驱逐目标订阅者，由客户端重连后重新拉取。
func (h *Hub) SendHistory(ch domain.ChannelDescriptor, p Peer) error {
	key := ch.Key()

	h.mu.Lock()
	snapshot := h.history.Snapshot(key)
	h.mu.Unlock()

	payload, err := json.Marshal(Frame{Type: FrameTypeHistory, Payload: snapshot})
	if err != nil {
		logrus.WithError(err).WithField("room_key", key).Error("Failed to encode history frame")
		return err
	}

	if err := p.Send(payload); err != nil {
		logrus.WithError(err).WithField("room_key", key).Warn("History delivery failed, evicting subscriber")
		h.mu.Lock()
		h.registry.Remove(key, p)
		h.mu.Unlock()
		p.CloseConn()
		return err
	}
	return nil
}

// Stats 返回所有出现过连接或消息的房间的当前采样，按 key 排序。
func (h *Hub) Stats() []RoomStat {
	h.mu.Lock()
	keys := make(map[string]struct{})
	for _, key := range h.registry.Keys() {
		keys[key] = struct{}{}
	}
	for key := range h.messageCount {
		keys[key] = struct{}{}
	}
	stats := make([]RoomStat, 0, len(keys))
	for key := range keys {
		stats = append(stats, RoomStat{
			Key:         key,
			Connections: h.registry.Count(key),
			Messages:    h.messageCount[key],
		})
	}
	h.mu.Unlock()

	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}

// CloseAll 在进程关闭时断开所有订阅者。
func (h *Hub) CloseAll() {
	h.mu.Lock()
	var peers []Peer
	for _, key := range h.registry.Keys() {
		peers = append(peers, h.registry.Snapshot(key)...)
	}
	h.registry = NewSubscriberRegistry()
	h.mu.Unlock()

	for _, p := range peers {
		p.CloseConn()
	}
	if len(peers) > 0 {
		logrus.WithField("closed", len(peers)).Info("All subscribers closed during shutdown")
	}
}
