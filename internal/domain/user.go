// Package domain 定义了平台的核心数据模型 (数据库模型和线上投影)。
package domain

import "time"

// User 表示平台的注册学习者。
type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Username           string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"`
	Password           string    `gorm:"type:text;not null"` // bcrypt 哈希，不能为空
	Email              string    `gorm:"type:varchar(191);uniqueIndex:idx_email"`
	FullName           *string   `gorm:"type:varchar(191)"`
	ActiveTitle        *string   `gorm:"type:varchar(191)"` // 当前展示的称号 (游戏化字段)
	ProfileBorderColor *string   `gorm:"type:varchar(32)"`
	Level              *int
	XPPoints           *int
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// PublicProfile 是用户在聊天消息中暴露的公开投影。
// 字段顺序即线上 JSON 的键顺序。
type PublicProfile struct {
	ID                 uint    `json:"id"`
	Username           string  `json:"username"`
	FullName           *string `json:"full_name"`
	ActiveTitle        *string `json:"active_title"`
	ProfileBorderColor *string `json:"profile_border_color"`
	Level              *int    `json:"level"`
	XPPoints           *int    `json:"xp_points"`
}

// PublicProfile 返回该用户的公开投影，绝不包含密码或邮箱。
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:                 u.ID,
		Username:           u.Username,
		FullName:           u.FullName,
		ActiveTitle:        u.ActiveTitle,
		ProfileBorderColor: u.ProfileBorderColor,
		Level:              u.Level,
		XPPoints:           u.XPPoints,
	}
}
