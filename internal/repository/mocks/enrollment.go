package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/repository"
)

// EnrollmentRepository 是 repository.EnrollmentRepository 的 Mock 实现。
type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) DistinctChannelPairs(ctx context.Context, userID uint) ([]repository.ChannelPair, error) {
	args := m.Called(ctx, userID)
	pairs, _ := args.Get(0).([]repository.ChannelPair)
	return pairs, args.Error(1)
}

func (m *EnrollmentRepository) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}
