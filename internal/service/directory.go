package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/repository"
)

// RoomDirectoryService 负责枚举用户可加入的聊天房间。
// 它自身不持有任何可变状态，只是报名表之上的纯函数。
type RoomDirectoryService struct {
	enrollmentRepo repository.EnrollmentRepository
}

// NewRoomDirectoryService 创建 RoomDirectoryService 实例。
func NewRoomDirectoryService(enrollmentRepo repository.EnrollmentRepository) *RoomDirectoryService {
	if enrollmentRepo == nil {
		panic("EnrollmentRepository cannot be nil for RoomDirectoryService")
	}
	return &RoomDirectoryService{enrollmentRepo: enrollmentRepo}
}

// RoomsFor 返回用户可加入的房间列表：
// 全局房间永远排在第一位，随后是报名覆盖的每个去重 (domain, area) 房间，
// 顺序跟随仓库层的 domain asc, area asc 排序。
// 仓库层失败原样上抛，绝不静默返回截断的列表。
func (s *RoomDirectoryService) RoomsFor(ctx context.Context, userID uint) ([]domain.ChatRoom, error) {
	logCtx := logrus.WithField("user_id", userID)

	general := domain.GeneralChannel()
	rooms := []domain.ChatRoom{domain.NewChatRoom(general)}
	seen := map[string]struct{}{general.Key(): {}}

	pairs, err := s.enrollmentRepo.DistinctChannelPairs(ctx, userID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list enrollment channel pairs")
		return nil, fmt.Errorf("directory: list channel pairs: %w", err)
	}

	for _, pair := range pairs {
		// 描述符一律经由工厂构造，自由输入在这里被规范化
		desc := domain.NewChannelDescriptor(pair.Domain, pair.Area)
		if _, dup := seen[desc.Key()]; dup {
			continue
		}
		seen[desc.Key()] = struct{}{}
		rooms = append(rooms, domain.NewChatRoom(desc))
	}

	logCtx.WithField("room_count", len(rooms)).Debug("Room directory resolved")
	return rooms, nil
}

// CanJoin 判断用户是否可以加入给定描述符指向的房间。
// 全局房间对所有用户开放；领域房间要求其 key 出现在用户的目录列表中，
// 猜 key 加入未报名房间会被拒绝。
func (s *RoomDirectoryService) CanJoin(ctx context.Context, userID uint, desc domain.ChannelDescriptor) (bool, error) {
	if desc.Scope == domain.ScopeGeneral && desc.Area == "" {
		return true, nil
	}
	rooms, err := s.RoomsFor(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, room := range rooms {
		if room.Key == desc.Key() {
			return true, nil
		}
	}
	return false, nil
}
