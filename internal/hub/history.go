package hub

import (
	"lingua-campus/internal/domain"
)

// DefaultHistorySize 是每个房间保留的最近消息条数的默认值。
const DefaultHistorySize = 200

// HistoryRing 维护每个房间最近 N 条消息的有界队列。
// 房间条目在第一次 Append 时惰性创建，进程退出前不会销毁。
// 非自锁：所有访问都由 Hub 的互斥锁串行化。
type HistoryRing struct {
	capacity int
	rooms    map[string][]*domain.ConversationMessage
}

// NewHistoryRing 创建指定容量的 HistoryRing，容量非法时退回默认值。
func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &HistoryRing{
		capacity: capacity,
		rooms:    make(map[string][]*domain.ConversationMessage),
	}
}

// Append 把消息追加到房间队列尾部，超出容量时丢弃最旧的一条。
func (h *HistoryRing) Append(roomKey string, msg *domain.ConversationMessage) {
	ring := h.rooms[roomKey]
	if len(ring) >= h.capacity {
		ring = ring[len(ring)-h.capacity+1:]
	}
	h.rooms[roomKey] = append(ring, msg)
}

// Snapshot 返回房间队列的副本，最旧的在前，可以安全交给外部消费。
func (h *HistoryRing) Snapshot(roomKey string) []*domain.ConversationMessage {
	ring := h.rooms[roomKey]
	out := make([]*domain.ConversationMessage, len(ring))
	copy(out, ring)
	return out
}

// Capacity 返回每个房间的容量上限。
func (h *HistoryRing) Capacity() int {
	return h.capacity
}
