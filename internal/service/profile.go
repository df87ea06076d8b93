package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/repository"
)

// ProfileService 提供用户公开投影，聊天边界在连接建立时查询一次。
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService 创建 ProfileService 实例。
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for ProfileService")
	}
	return &ProfileService{userRepo: userRepo}
}

// ProfileFor 返回用户的公开投影。
func (s *ProfileService) ProfileFor(ctx context.Context, userID uint) (domain.PublicProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("ProfileFor: User not found")
			return domain.PublicProfile{}, ErrUserNotFound
		}
		logrus.WithField("user_id", userID).WithError(err).Error("ProfileFor: Repository error")
		return domain.PublicProfile{}, ErrInternalServer
	}
	return user.PublicProfile(), nil
}
