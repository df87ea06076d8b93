package hub

// Peer 是注册到房间的订阅者句柄。
// Hub 只通过这个接口接触连接，测试可以注入假实现。
type Peer interface {
	// Connected 报告底层传输是否仍处于连接状态。
	Connected() bool
	// Send 把一帧已编码的负载投递给对端；失败意味着该订阅者将被驱逐。
	Send(payload []byte) error
	// CloseConn 关闭底层连接，可重复调用。
	CloseConn()
}

// SubscriberRegistry 维护每个房间的活跃订阅者集合。
// 同一句柄至多出现一次；集合清空时删除整个桶。
// 非自锁：所有访问都由 Hub 的互斥锁串行化。
type SubscriberRegistry struct {
	rooms map[string]map[Peer]struct{}
}

// NewSubscriberRegistry 创建空的 SubscriberRegistry。
func NewSubscriberRegistry() *SubscriberRegistry {
	return &SubscriberRegistry{rooms: make(map[string]map[Peer]struct{})}
}

// Add 把句柄注册到房间；已存在时是 no-op。
func (r *SubscriberRegistry) Add(roomKey string, p Peer) {
	bucket, ok := r.rooms[roomKey]
	if !ok {
		bucket = make(map[Peer]struct{})
		r.rooms[roomKey] = bucket
	}
	bucket[p] = struct{}{}
}

// Remove 把句柄从房间移除；不存在时是 no-op。
func (r *SubscriberRegistry) Remove(roomKey string, p Peer) {
	bucket, ok := r.rooms[roomKey]
	if !ok {
		return
	}
	delete(bucket, p)
	if len(bucket) == 0 {
		delete(r.rooms, roomKey)
	}
}

// Snapshot 返回房间当前订阅者的副本列表，顺序无意义。
func (r *SubscriberRegistry) Snapshot(roomKey string) []Peer {
	bucket := r.rooms[roomKey]
	peers := make([]Peer, 0, len(bucket))
	for p := range bucket {
		peers = append(peers, p)
	}
	return peers
}

// Prune 批量移除失效句柄，集合清空时删除桶。
func (r *SubscriberRegistry) Prune(roomKey string, stale []Peer) {
	bucket, ok := r.rooms[roomKey]
	if !ok {
		return
	}
	for _, p := range stale {
		delete(bucket, p)
	}
	if len(bucket) == 0 {
		delete(r.rooms, roomKey)
	}
}

// Count 返回房间当前的订阅者数量。
func (r *SubscriberRegistry) Count(roomKey string) int {
	return len(r.rooms[roomKey])
}

// Keys 返回当前有订阅者的所有房间 key。
func (r *SubscriberRegistry) Keys() []string {
	keys := make([]string, 0, len(r.rooms))
	for key := range r.rooms {
		keys = append(keys, key)
	}
	return keys
}
