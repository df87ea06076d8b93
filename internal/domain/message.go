package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// wireTimeLayout 是线上时间戳的格式：ISO-8601 UTC，显式 +00:00 偏移。
const wireTimeLayout = "2006-01-02T15:04:05-07:00"

// WireTime 按线上格式序列化的时间戳，构造后立即归一为 UTC。
type WireTime time.Time

func (t WireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(wireTimeLayout))
}

func (t *WireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = WireTime(parsed.UTC())
	return nil
}

// Time 返回底层的 time.Time (UTC)。
func (t WireTime) Time() time.Time {
	return time.Time(t).UTC()
}

// MessageOptions 携带消息的已知计数字段和一个自由格式的 extra map。
// extra 中的未知字段原样透传，服务端不解释也不丢弃。
type MessageOptions struct {
	CitationCount int                    `json:"citation_count"`
	ReplyCount    int                    `json:"reply_count"`
	AllowComments bool                   `json:"allow_comments"`
	Extra         map[string]interface{} `json:"extra"`
}

// DefaultMessageOptions 返回客户端未提供 options 时的默认值。
func DefaultMessageOptions() MessageOptions {
	return MessageOptions{AllowComments: true, Extra: map[string]interface{}{}}
}

// ConversationMessage 是一条聊天消息，发布后不再修改。
// 字段顺序即线上 JSON 的键顺序。
type ConversationMessage struct {
	ID        string         `json:"id"`
	Scope     ChannelScope   `json:"scope"`
	Domain    *string        `json:"domain"`
	Area      *string        `json:"area"`
	Content   string         `json:"content"`
	CreatedAt WireTime       `json:"created_at"`
	User      PublicProfile  `json:"user"`
	Options   MessageOptions `json:"options"`
}

// NewConversationMessage 在服务端补全字段后构造消息：
// 生成 id，打上 UTC 时间戳，计数器钳为非负，extra 缺省为空对象。
func NewConversationMessage(ch ChannelDescriptor, content string, user PublicProfile, opts MessageOptions) *ConversationMessage {
	if opts.CitationCount < 0 {
		opts.CitationCount = 0
	}
	if opts.ReplyCount < 0 {
		opts.ReplyCount = 0
	}
	if opts.Extra == nil {
		opts.Extra = map[string]interface{}{}
	}
	return &ConversationMessage{
		ID:        uuid.NewString(),
		Scope:     ch.Scope,
		Domain:    nullableString(ch.Domain),
		Area:      nullableString(ch.Area),
		Content:   content,
		CreatedAt: WireTime(time.Now().UTC()),
		User:      user,
		Options:   opts,
	}
}
