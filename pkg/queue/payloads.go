package queue

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHeader 定义所有事件的通用头部元数据.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// Publisher 发布端，由 storage/mq.Client 实现.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// 变更原因.
const (
	ReasonDeleted    = "deleted"
	ReasonFeatured   = "featured"
	ReasonUnfeatured = "unfeatured"
	ReasonReordered  = "reordered"
	ReasonUploaded   = "uploaded"
	ReasonManual     = "manual" // 运维通过 CLI 触发
)

// GalleryChangedPayload 图集变化.
type GalleryChangedPayload struct {
	// Galleries 受影响的图集名，为空表示全部.
	Galleries []string `json:"galleries,omitempty"`
	Reason    string   `json:"reason"`
	PublicIDs []string `json:"public_ids,omitempty"`
}

// ContactReceivedPayload 联系表单处理结果，不包含联系人详情.
type ContactReceivedPayload struct {
	Reference string `json:"reference"`
	Locale    string `json:"locale"`
	Transport string `json:"transport,omitempty"`
	Delivered bool   `json:"delivered"`
	Spam      bool   `json:"spam,omitempty"`
}
