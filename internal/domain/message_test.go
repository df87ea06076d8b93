package domain_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-campus/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- 测试 ConversationMessage 构造 ---

func TestNewConversationMessage_FillsServerFields(t *testing.T) {
	// Arrange
	ch := domain.NewChannelDescriptor("python", "django")
	profile := domain.PublicProfile{
		ID:       42,
		Username: "amelie",
		FullName: strPtr("Amélie Martin"),
		Level:    intPtr(3),
		XPPoints: intPtr(870),
	}

	// Act
	msg := domain.NewConversationMessage(ch, "On commence ?", profile, domain.DefaultMessageOptions())

	// Assert
	assert.NotEmpty(t, msg.ID, "服务端应生成消息 id")
	assert.Equal(t, domain.ScopeDomain, msg.Scope)
	require.NotNil(t, msg.Domain)
	assert.Equal(t, "python", *msg.Domain)
	require.NotNil(t, msg.Area)
	assert.Equal(t, "django", *msg.Area)
	assert.Equal(t, "On commence ?", msg.Content)
	assert.Equal(t, profile, msg.User)
	assert.WithinDuration(t, time.Now().UTC(), msg.CreatedAt.Time(), 2*time.Second)
	assert.True(t, msg.Options.AllowComments)
	assert.NotNil(t, msg.Options.Extra, "extra 缺省为空对象而不是 nil")
}

func TestNewConversationMessage_ClampsNegativeCounters(t *testing.T) {
	opts := domain.MessageOptions{CitationCount: -3, ReplyCount: -1, AllowComments: true}

	msg := domain.NewConversationMessage(domain.GeneralChannel(), "salut", domain.PublicProfile{ID: 1, Username: "leo"}, opts)

	assert.Equal(t, 0, msg.Options.CitationCount, "负计数应钳为 0")
	assert.Equal(t, 0, msg.Options.ReplyCount, "负计数应钳为 0")
	assert.NotNil(t, msg.Options.Extra)
}

// --- 测试线上 JSON 形状 ---

func TestConversationMessage_WireJSONShape(t *testing.T) {
	// Arrange: 一条全局频道消息，profile 的可选字段部分缺省
	profile := domain.PublicProfile{ID: 7, Username: "leo", Level: intPtr(1)}
	msg := domain.NewConversationMessage(domain.GeneralChannel(), "Premier message", profile, domain.DefaultMessageOptions())

	// Act
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Assert: 顶层键完整，缺省字段是 null
	for _, key := range []string{"id", "scope", "domain", "area", "content", "created_at", "user", "options"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "general", decoded["scope"])
	assert.Nil(t, decoded["domain"], "全局消息的 domain 应为 null")
	assert.Nil(t, decoded["area"])
	assert.Equal(t, "Premier message", decoded["content"])

	user, ok := decoded["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "leo", user["username"])
	assert.Nil(t, user["full_name"])
	assert.Equal(t, float64(1), user["level"])

	options, ok := decoded["options"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), options["citation_count"])
	assert.Equal(t, float64(0), options["reply_count"])
	assert.Equal(t, true, options["allow_comments"])
	assert.Equal(t, map[string]interface{}{}, options["extra"], "extra 缺省应输出空对象")
}

func TestWireTime_FormatUsesExplicitOffset(t *testing.T) {
	// 时间戳必须是显式 +00:00 偏移，而不是 Z 后缀
	moment := domain.WireTime(time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC))

	data, err := json.Marshal(moment)
	require.NoError(t, err)

	assert.Equal(t, `"2025-06-01T12:30:45+00:00"`, string(data))
	assert.Regexp(t, regexp.MustCompile(`\+00:00"$`), string(data))
}

func TestWireTime_RoundTrip(t *testing.T) {
	original := domain.WireTime(time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded domain.WireTime
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Time().Equal(decoded.Time()))
}

func TestMessageOptions_ExtraPreservedVerbatim(t *testing.T) {
	// 客户端塞进 extra 的未知嵌套字段必须原样透传
	raw := []byte(`{"citation_count":2,"reply_count":0,"allow_comments":false,"extra":{"pinned":true,"tags":["aide","urgent"],"meta":{"color":"#ff0000"}}}`)

	var opts domain.MessageOptions
	require.NoError(t, json.Unmarshal(raw, &opts))

	assert.Equal(t, 2, opts.CitationCount)
	assert.False(t, opts.AllowComments)
	assert.Equal(t, true, opts.Extra["pinned"])
	assert.Equal(t, []interface{}{"aide", "urgent"}, opts.Extra["tags"])

	data, err := json.Marshal(opts)
	require.NoError(t, err)

	var roundTripped domain.MessageOptions
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, opts.Extra, roundTripped.Extra, "extra 内容经序列化后应保持不变")
}
