package hub_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-campus/internal/domain"
	"lingua-campus/internal/hub"
)

func makeMessage(content string) *domain.ConversationMessage {
	profile := domain.PublicProfile{ID: 1, Username: "leo"}
	return domain.NewConversationMessage(domain.GeneralChannel(), content, profile, domain.DefaultMessageOptions())
}

func TestHistoryRing_EmptyRoomSnapshot(t *testing.T) {
	ring := hub.NewHistoryRing(5)

	snapshot := ring.Snapshot("general:general:*")

	assert.NotNil(t, snapshot, "未知房间应返回空切片而不是 nil")
	assert.Empty(t, snapshot)
}

func TestHistoryRing_KeepsInsertionOrder(t *testing.T) {
	ring := hub.NewHistoryRing(5)
	key := "general:general:*"

	ring.Append(key, makeMessage("un"))
	ring.Append(key, makeMessage("deux"))
	ring.Append(key, makeMessage("trois"))

	snapshot := ring.Snapshot(key)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "un", snapshot[0].Content)
	assert.Equal(t, "deux", snapshot[1].Content)
	assert.Equal(t, "trois", snapshot[2].Content)
}

func TestHistoryRing_DropsOldestAtCapacity(t *testing.T) {
	// 容量为 3，写入 5 条，只有最后 3 条存留
	ring := hub.NewHistoryRing(3)
	key := "domain:python:*"

	for i := 1; i <= 5; i++ {
		ring.Append(key, makeMessage(fmt.Sprintf("msg-%d", i)))
	}

	snapshot := ring.Snapshot(key)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "msg-3", snapshot[0].Content)
	assert.Equal(t, "msg-4", snapshot[1].Content)
	assert.Equal(t, "msg-5", snapshot[2].Content)
}

func TestHistoryRing_RoomsAreIsolated(t *testing.T) {
	ring := hub.NewHistoryRing(10)

	ring.Append("domain:python:*", makeMessage("msg-α"))
	ring.Append("domain:javascript:*", makeMessage("msg-β"))

	python := ring.Snapshot("domain:python:*")
	javascript := ring.Snapshot("domain:javascript:*")
	require.Len(t, python, 1)
	require.Len(t, javascript, 1)
	assert.Equal(t, "msg-α", python[0].Content)
	assert.Equal(t, "msg-β", javascript[0].Content)
}

func TestHistoryRing_SnapshotIsACopy(t *testing.T) {
	ring := hub.NewHistoryRing(5)
	key := "general:general:*"
	ring.Append(key, makeMessage("original"))

	snapshot := ring.Snapshot(key)
	snapshot[0] = makeMessage("tampered")

	// 内部状态不受外部修改影响
	fresh := ring.Snapshot(key)
	assert.Equal(t, "original", fresh[0].Content)
}

func TestNewHistoryRing_InvalidCapacityFallsBack(t *testing.T) {
	assert.Equal(t, hub.DefaultHistorySize, hub.NewHistoryRing(0).Capacity())
	assert.Equal(t, hub.DefaultHistorySize, hub.NewHistoryRing(-1).Capacity())
	assert.Equal(t, 7, hub.NewHistoryRing(7).Capacity())
}
