package domain

import "time"

// Capsule 表示一个 AI 生成的学习胶囊 (课程单元)。
// 聊天房间由胶囊的 (domain, area) 对派生，内容生成本身不在本服务范围内。
type Capsule struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"type:varchar(191);not null"`
	Domain    string    `gorm:"type:varchar(191);index:idx_capsule_channel;not null"` // 例如 "programmation"
	Area      string    `gorm:"type:varchar(191);index:idx_capsule_channel"`          // 例如 "python"，可为空
	Level     string    `gorm:"type:varchar(64)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Enrollment 表示用户对某个胶囊的报名记录。
type Enrollment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_enrollment_user_capsule;not null"`
	CapsuleID uint      `gorm:"uniqueIndex:idx_enrollment_user_capsule;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// RoomActivity 是后台周期任务对房间占用情况的采样。
// 只记录连接数和累计广播条数，消息本身从不落库。
type RoomActivity struct {
	ID          uint      `gorm:"primaryKey"`
	RoomKey     string    `gorm:"type:varchar(191);index;not null"`
	Connections int       `gorm:"not null"`
	Messages    int64     `gorm:"not null"` // 自进程启动以来该房间广播的消息总数
	SampledAt   time.Time `gorm:"index;not null"`
}
