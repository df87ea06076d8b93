package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lingua-campus/internal/domain"
)

// ActivityRepository 是 repository.ActivityRepository 的 Mock 实现。
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) SaveBatch(ctx context.Context, samples []domain.RoomActivity) error {
	args := m.Called(ctx, samples)
	return args.Error(0)
}
