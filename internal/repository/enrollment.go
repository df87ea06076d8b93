package repository

import (
	"context"

	"lingua-campus/internal/domain"
)

// ChannelPair 是用户报名胶囊的去重 (domain, area) 投影，
// 房间目录据此枚举可加入的领域房间。
type ChannelPair struct {
	Domain string
	Area   string
}

// EnrollmentRepository 定义了报名数据的存储和检索操作。
type EnrollmentRepository interface {
	// DistinctChannelPairs 返回用户报名覆盖的去重 (domain, area) 对，
	// 按 domain 升序、area 升序排列。用户无报名时返回空列表。
	DistinctChannelPairs(ctx context.Context, userID uint) ([]ChannelPair, error)

	// Save 保存一条报名记录。
	// 重复报名同一胶囊违反唯一约束，应返回 ErrDuplicateEntry。
	Save(ctx context.Context, enrollment *domain.Enrollment) error
}
