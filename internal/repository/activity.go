package repository

import (
	"context"

	"lingua-campus/internal/domain"
)

// ActivityRepository 定义了房间活跃度采样的存储操作。
type ActivityRepository interface {
	// SaveBatch 批量保存一次采样产生的所有样本。
	SaveBatch(ctx context.Context, samples []domain.RoomActivity) error
}
