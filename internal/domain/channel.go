package domain

import (
	"strings"
)

// ChannelScope 表示聊天频道的作用域。
// 线上格式固定为其文本值："general" 或 "domain"。
type ChannelScope string

const (
	ScopeGeneral ChannelScope = "general"
	ScopeDomain  ChannelScope = "domain"
)

// ChannelDescriptor 是频道的不可变标识，由 (scope, domain, area) 组成。
// 必须通过 NewChannelDescriptor 工厂构造，禁止在其他地方拼接 key，
// 否则大小写不同的输入会产生两个房间。
type ChannelDescriptor struct {
	Scope  ChannelScope
	Domain string // 规范化后的领域，空串表示缺省
	Area   string // 规范化后的细分领域，空串表示缺省
}

// NewChannelDescriptor 规范化输入并构造描述符：
// 去除首尾空白、转小写；空串或 "general" 的 domain 归入 GENERAL 作用域。
// 只给 area 不给 domain 时仍然是 GENERAL，但 area 保留并体现在 key 中。
func NewChannelDescriptor(domainName, area string) ChannelDescriptor {
	d := strings.ToLower(strings.TrimSpace(domainName))
	a := strings.ToLower(strings.TrimSpace(area))

	if d == "" || d == string(ScopeGeneral) {
		return ChannelDescriptor{Scope: ScopeGeneral, Domain: "", Area: a}
	}
	return ChannelDescriptor{Scope: ScopeDomain, Domain: d, Area: a}
}

// GeneralChannel 返回所有用户共享的全局频道。
func GeneralChannel() ChannelDescriptor {
	return NewChannelDescriptor("", "")
}

// Key 返回索引所有房间状态的稳定文本键，
// 格式为 "{scope}:{domain|general}:{area|*}"，全小写。
// 两个描述符相等当且仅当 key 相等。
func (d ChannelDescriptor) Key() string {
	domainSeg := d.Domain
	if domainSeg == "" {
		domainSeg = string(ScopeGeneral)
	}
	areaSeg := d.Area
	if areaSeg == "" {
		areaSeg = "*"
	}
	return string(d.Scope) + ":" + domainSeg + ":" + areaSeg
}

// Payload 返回用于线上传输的 map 形式，缺省字段为 nil。
func (d ChannelDescriptor) Payload() map[string]interface{} {
	return map[string]interface{}{
		"key":    d.Key(),
		"scope":  string(d.Scope),
		"domain": nullableString(d.Domain),
		"area":   nullableString(d.Area),
	}
}

// ChatRoom 是房间目录返回给客户端的视图投影。
type ChatRoom struct {
	Key         string       `json:"key"`
	Scope       ChannelScope `json:"scope"`
	Domain      *string      `json:"domain"`
	Area        *string      `json:"area"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
}

// 全局房间的本地化文案。
const (
	generalRoomTitle       = "Salon général"
	generalRoomDescription = "Espace de discussion ouvert à tous les apprenants"
)

// NewChatRoom 依据标题策略把描述符投影为房间视图：
// GENERAL 使用本地化文案，DOMAIN 使用 "{domain}" 或 "{domain} · {area}"。
// description 只在全局房间上出现。
func NewChatRoom(d ChannelDescriptor) ChatRoom {
	room := ChatRoom{
		Key:    d.Key(),
		Scope:  d.Scope,
		Domain: nullableString(d.Domain),
		Area:   nullableString(d.Area),
	}

	if d.Scope == ScopeGeneral {
		room.Title = generalRoomTitle
		desc := generalRoomDescription
		room.Description = &desc
		return room
	}

	room.Title = d.Domain
	if d.Area != "" {
		room.Title = d.Domain + " · " + d.Area
	}
	return room
}

// nullableString 把空串映射为 nil，供 JSON 序列化输出 null。
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
