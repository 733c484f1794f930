package queue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishGalleryChanged 发布 gallery.changed 事件.
func PublishGalleryChanged(ctx context.Context, pub Publisher, payload GalleryChangedPayload, opts ...Option) error {
	return publish(ctx, pub, TopicGalleryChanged, payload, opts...)
}

// ParseGalleryChanged 解析 gallery.changed 事件.
func ParseGalleryChanged(msg *message.Message) (Message[GalleryChangedPayload], error) {
	return Parse[GalleryChangedPayload](msg)
}

// PublishContactReceived 发布 contact.received 事件.
func PublishContactReceived(ctx context.Context, pub Publisher, payload ContactReceivedPayload, opts ...Option) error {
	return publish(ctx, pub, TopicContactReceived, payload, opts...)
}

// ParseContactReceived 解析 contact.received 事件.
func ParseContactReceived(msg *message.Message) (Message[ContactReceivedPayload], error) {
	return Parse[ContactReceivedPayload](msg)
}

func publish[T any](ctx context.Context, pub Publisher, topic string, payload T, opts ...Option) error {
	msg, err := NewMessage(ctx, topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, topic, msg)
}
