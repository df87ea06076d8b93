package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/repository"
)

// GormEnrollmentRepository 是 EnrollmentRepository 接口的 GORM 实现
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository 创建 GormEnrollmentRepository 实例
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormEnrollmentRepository")
	}
	return &GormEnrollmentRepository{db: db}
}

// DistinctChannelPairs 实现用户报名的去重 (domain, area) 投影。
// 排序在 SQL 层完成，房间目录依赖这里的 domain asc, area asc 顺序。
func (r *GormEnrollmentRepository) DistinctChannelPairs(ctx context.Context, userID uint) ([]repository.ChannelPair, error) {
	var pairs []repository.ChannelPair
	err := r.db.WithContext(ctx).
		Model(&domain.Enrollment{}).
		Select("DISTINCT capsules.domain AS domain, capsules.area AS area").
		Joins("JOIN capsules ON capsules.id = enrollments.capsule_id").
		Where("enrollments.user_id = ?", userID).
		Order("capsules.domain ASC, capsules.area ASC").
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: distinct channel pairs for user %d: %w", userID, err)
	}
	return pairs, nil
}

// Save 实现保存报名记录
func (r *GormEnrollmentRepository) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	err := r.db.WithContext(ctx).Save(enrollment).Error
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save enrollment (user: %d, capsule: %d): %w", enrollment.UserID, enrollment.CapsuleID, err)
	}
	return nil
}
