// Package queue 定义服务内部事件的信封格式与发布/解析辅助函数.
//
// 消息信封 JSON 结构：
//
//	{
//	  "header": {
//	    "topic": "gallery.changed",
//	    "trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
//	    "producer": "folio",
//	    "occurred_at": "2025-01-02T03:04:05.123456Z",
//	    "version": "v1"
//	  },
//	  "payload": { "galleries": ["featured"], "reason": "reordered" }
//	}
//
// 发布/订阅示例：
//
//	_ = queue.PublishGalleryChanged(ctx, mqClient, queue.GalleryChangedPayload{
//		Galleries: []string{"featured"},
//		Reason:    queue.ReasonReordered,
//	})
//
//	ch, _ := mqClient.Subscribe(ctx, queue.TopicGalleryChanged)
//	for m := range ch {
//		env, _ := queue.ParseGalleryChanged(m)
//		// env.Payload.Galleries ...
//		m.Ack()
//	}
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

const (
	PayloadVersionV1 = "v1"
	DefaultProducer  = "folio"
)

var (
	// ErrUnsupportedVersion 信封版本不是 v1.
	ErrUnsupportedVersion = errors.New("unsupported event version")
	// ErrTopicMismatch 信封内的 topic 与消息元数据不一致.
	ErrTopicMismatch = errors.New("event topic mismatch")
)

// Option 调整事件头.
type Option func(*EventHeader)

// WithTraceID 显式指定 TraceID，优先于 ctx 中的 span.
func WithTraceID(id string) Option { return func(h *EventHeader) { h.TraceID = id } }

// WithProducer 设置 Producer.
func WithProducer(p string) Option { return func(h *EventHeader) { h.Producer = p } }

// NewEventHeader 创建事件头，TraceID 默认取 ctx 中有效 span 的 trace id.
func NewEventHeader(ctx context.Context, topic string, opts ...Option) EventHeader {
	hdr := EventHeader{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
		Producer:   DefaultProducer,
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		hdr.TraceID = sc.TraceID().String()
	}

	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// NewMessage 把负载封装为带信封的 watermill 消息.
// 元数据冗余 topic/producer/version/trace_id，关联 ID 为 trace id，没有时使用消息 UUID.
func NewMessage[T any](ctx context.Context, topic string, payload T, opts ...Option) (*message.Message, error) {
	header := NewEventHeader(ctx, topic, opts...)

	data, err := sonic.Marshal(Message[T]{Header: header, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("producer", header.Producer)
	msg.Metadata.Set("version", header.Version)
	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))

	correlation := msg.UUID
	if header.TraceID != "" {
		msg.Metadata.Set("trace_id", header.TraceID)
		correlation = header.TraceID
	}

	middleware.SetCorrelationID(correlation, msg)

	return msg, nil
}

// Parse 解出信封，拒绝未知版本与 topic 不符的消息.
func Parse[T any](msg *message.Message) (Message[T], error) {
	var env Message[T]
	if err := sonic.Unmarshal(msg.Payload, &env); err != nil {
		return env, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}

	if env.Header.Version != PayloadVersionV1 {
		return env, fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.Header.Version)
	}

	if topic := msg.Metadata.Get("topic"); topic != "" && topic != env.Header.Topic {
		return env, fmt.Errorf("%w: %s != %s", ErrTopicMismatch, env.Header.Topic, topic)
	}

	return env, nil
}
