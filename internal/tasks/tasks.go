package tasks

import (
	"encoding/json"
	"time"
)

// 定义任务类型常量
const (
	// TypeRoomActivitySweep 周期性采样各聊天房间的占用情况
	TypeRoomActivitySweep = "chat:activity_sweep"
)

// RoomActivitySweepPayload 定义了房间活跃度采样任务的数据结构
type RoomActivitySweepPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewRoomActivitySweepTask 创建一个新的房间活跃度采样任务负载
func NewRoomActivitySweepTask() ([]byte, error) {
	payload := RoomActivitySweepPayload{RequestedAt: time.Now().UTC()}
	return json.Marshal(payload)
}
