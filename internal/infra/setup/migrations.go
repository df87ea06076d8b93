package setup

import (
	"fmt"

	"gorm.io/gorm"

	"lingua-campus/internal/domain"
)

// MigrateDB 迁移所有数据库模型。
// 聊天历史是进程内软状态，这里只迁移用户、胶囊、报名和活跃度采样表。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.User{},
		&domain.Capsule{},
		&domain.Enrollment{},
		&domain.RoomActivity{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate tables: %w", err)
	}
	return nil
}
