package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/hub"
	"lingua-campus/internal/repository"
	"lingua-campus/internal/tasks"
)

// ActivitySweepHandler 处理房间活跃度采样任务：
// 读取 Hub 的当前统计并批量落库。消息本身从不持久化。
type ActivitySweepHandler struct {
	hub          *hub.Hub
	activityRepo repository.ActivityRepository
}

// NewActivitySweepHandler 创建 Handler 实例
func NewActivitySweepHandler(h *hub.Hub, activityRepo repository.ActivityRepository) *ActivitySweepHandler {
	if h == nil {
		panic("Hub cannot be nil for ActivitySweepHandler")
	}
	if activityRepo == nil {
		panic("ActivityRepository cannot be nil for ActivitySweepHandler")
	}
	return &ActivitySweepHandler{hub: h, activityRepo: activityRepo}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *ActivitySweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	var payload tasks.RoomActivitySweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	stats := h.hub.Stats()
	if len(stats) == 0 {
		logCtx.Debug("No active rooms, nothing to sample")
		return nil
	}

	now := time.Now().UTC()
	samples := make([]domain.RoomActivity, 0, len(stats))
	for _, stat := range stats {
		samples = append(samples, domain.RoomActivity{
			RoomKey:     stat.Key,
			Connections: stat.Connections,
			Messages:    stat.Messages,
			SampledAt:   now,
		})
	}

	if err := h.activityRepo.SaveBatch(ctx, samples); err != nil {
		logCtx.WithError(err).Errorf("Failed to save %d room activity samples", len(samples))
		return err
	}

	logCtx.WithField("sample_count", len(samples)).Info("Room activity sweep completed")
	return nil
}
