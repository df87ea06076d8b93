package hub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lingua-campus/internal/hub"
)

func TestSubscriberRegistry_AddIsIdempotent(t *testing.T) {
	registry := hub.NewSubscriberRegistry()
	peer := newFakePeer()

	registry.Add("general:general:*", peer)
	registry.Add("general:general:*", peer)

	assert.Equal(t, 1, registry.Count("general:general:*"), "重复注册同一句柄不应增加计数")
}

func TestSubscriberRegistry_RemoveIsIdempotent(t *testing.T) {
	registry := hub.NewSubscriberRegistry()
	peer := newFakePeer()
	registry.Add("domain:python:*", peer)

	registry.Remove("domain:python:*", peer)
	registry.Remove("domain:python:*", peer)
	registry.Remove("domain:rust:*", peer) // 从未注册过的房间

	assert.Equal(t, 0, registry.Count("domain:python:*"))
}

func TestSubscriberRegistry_EmptyBucketDeleted(t *testing.T) {
	registry := hub.NewSubscriberRegistry()
	peer := newFakePeer()
	registry.Add("domain:python:*", peer)
	registry.Remove("domain:python:*", peer)

	assert.Empty(t, registry.Keys(), "清空的房间桶应被删除")
}

func TestSubscriberRegistry_SnapshotIndependentOfMutation(t *testing.T) {
	registry := hub.NewSubscriberRegistry()
	one := newFakePeer()
	two := newFakePeer()
	registry.Add("general:general:*", one)
	registry.Add("general:general:*", two)

	snapshot := registry.Snapshot("general:general:*")
	registry.Remove("general:general:*", one)

	assert.Len(t, snapshot, 2, "快照不受后续移除影响")
	assert.Equal(t, 1, registry.Count("general:general:*"))
}

func TestSubscriberRegistry_PruneRemovesBatch(t *testing.T) {
	registry := hub.NewSubscriberRegistry()
	one := newFakePeer()
	two := newFakePeer()
	three := newFakePeer()
	registry.Add("domain:python:django", one)
	registry.Add("domain:python:django", two)
	registry.Add("domain:python:django", three)

	registry.Prune("domain:python:django", []hub.Peer{one, three})

	assert.Equal(t, 1, registry.Count("domain:python:django"))

	// 剩余的也清掉后，桶消失
	registry.Prune("domain:python:django", []hub.Peer{two})
	assert.Empty(t, registry.Keys())
}
