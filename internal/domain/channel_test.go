package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-campus/internal/domain"
)

// --- 测试 NewChannelDescriptor 工厂 ---

func TestNewChannelDescriptor_Normalization(t *testing.T) {
	testCases := []struct {
		name        string
		domainInput string
		areaInput   string
		wantScope   domain.ChannelScope
		wantDomain  string
		wantArea    string
		wantKey     string
	}{
		{
			name:      "空输入归入全局频道",
			wantScope: domain.ScopeGeneral,
			wantKey:   "general:general:*",
		},
		{
			name:        "domain 为 general 字面量时等同于空",
			domainInput: "General",
			wantScope:   domain.ScopeGeneral,
			wantKey:     "general:general:*",
		},
		{
			name:        "大小写和空白被规范化",
			domainInput: "  Python  ",
			areaInput:   " Django ",
			wantScope:   domain.ScopeDomain,
			wantDomain:  "python",
			wantArea:    "django",
			wantKey:     "domain:python:django",
		},
		{
			name:        "只有 domain 时 area 段为通配",
			domainInput: "javascript",
			wantScope:   domain.ScopeDomain,
			wantDomain:  "javascript",
			wantKey:     "domain:javascript:*",
		},
		{
			name:      "只给 area 不给 domain 仍是全局作用域且保留 area",
			areaInput: "Grammaire",
			wantScope: domain.ScopeGeneral,
			wantArea:  "grammaire",
			wantKey:   "general:general:grammaire",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			desc := domain.NewChannelDescriptor(tc.domainInput, tc.areaInput)

			assert.Equal(t, tc.wantScope, desc.Scope)
			assert.Equal(t, tc.wantDomain, desc.Domain)
			assert.Equal(t, tc.wantArea, desc.Area)
			assert.Equal(t, tc.wantKey, desc.Key())
		})
	}
}

func TestNewChannelDescriptor_CaseVariantsShareKey(t *testing.T) {
	// 不同大小写的输入必须落到同一个房间
	a := domain.NewChannelDescriptor("Python", "DJANGO")
	b := domain.NewChannelDescriptor("python", "django")

	assert.Equal(t, a.Key(), b.Key(), "大小写不同的输入不应产生两个房间")
	assert.Equal(t, a, b)
}

func TestGeneralChannel(t *testing.T) {
	general := domain.GeneralChannel()

	assert.Equal(t, domain.ScopeGeneral, general.Scope)
	assert.Equal(t, "general:general:*", general.Key())
}

// --- 测试 ChatRoom 视图投影 ---

func TestNewChatRoom_GeneralUsesLocalizedTitle(t *testing.T) {
	room := domain.NewChatRoom(domain.GeneralChannel())

	assert.Equal(t, "general:general:*", room.Key)
	assert.Equal(t, "Salon général", room.Title)
	require.NotNil(t, room.Description, "全局房间应带描述文案")
	assert.Nil(t, room.Domain)
	assert.Nil(t, room.Area)
}

func TestNewChatRoom_DomainTitlePolicy(t *testing.T) {
	// 只有 domain
	room := domain.NewChatRoom(domain.NewChannelDescriptor("python", ""))
	assert.Equal(t, "python", room.Title)
	assert.Nil(t, room.Description, "领域房间没有描述文案")

	// domain + area
	room = domain.NewChatRoom(domain.NewChannelDescriptor("python", "django"))
	assert.Equal(t, "python · django", room.Title)
	require.NotNil(t, room.Area)
	assert.Equal(t, "django", *room.Area)
}

func TestChatRoom_JSONNullFields(t *testing.T) {
	// 缺省字段必须输出 null 而不是空串
	room := domain.NewChatRoom(domain.NewChannelDescriptor("python", ""))

	data, err := json.Marshal(room)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["area"], "缺省 area 应序列化为 null")
	assert.Equal(t, "python", decoded["domain"])
}
