package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lingua-campus/internal/domain"
)

// GormActivityRepository 是 ActivityRepository 接口的 GORM 实现
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository 创建 GormActivityRepository 实例
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	if db == nil {
		panic("database connection cannot be nil for GormActivityRepository")
	}
	return &GormActivityRepository{db: db}
}

// SaveBatch 实现批量保存采样
func (r *GormActivityRepository) SaveBatch(ctx context.Context, samples []domain.RoomActivity) error {
	if len(samples) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&samples).Error; err != nil {
		return fmt.Errorf("gorm: save %d room activity samples: %w", len(samples), err)
	}
	return nil
}
