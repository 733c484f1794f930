// Package mq 订阅服务内部事件并执行对应的副作用.
//
// 多实例部署时，某个实例修改了图集会发布 gallery.changed，
// 其余实例在这里收到后清理本地的图集缓存. contact.received 只做审计日志.
//
// 使用示例：
//
//	c := mq.NewConsumer(mqClient, service.NewGalleryService(ctx))
//	if err := c.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer c.Wait()
package mq

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/queue"
)

// Subscriber 订阅端，由 storage/mq.Client 实现.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Invalidator 清理图集缓存，names 为空表示全部.
type Invalidator interface {
	Invalidate(ctx context.Context, names ...string) error
}

// Consumer 事件消费者.
type Consumer struct {
	sub    Subscriber
	inv    Invalidator
	logger *zerolog.Logger
	wg     sync.WaitGroup
}

// NewConsumer 创建消费者.
func NewConsumer(sub Subscriber, inv Invalidator) *Consumer {
	return &Consumer{sub: sub, inv: inv, logger: nlog.With("mq.consumer")}
}

// Start 同步完成订阅后在后台消费，ctx 结束时退出.
func (c *Consumer) Start(ctx context.Context) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		queue.TopicGalleryChanged:  c.handleGalleryChanged,
		queue.TopicContactReceived: c.handleContactReceived,
	}

	for _, topic := range queue.AllTopics {
		h, ok := handlers[topic]
		if !ok {
			continue
		}

		ch, err := c.sub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		c.wg.Add(1)

		go c.consume(ctx, topic, ch, h)
	}

	return nil
}

// Wait 等待所有消费协程退出.
func (c *Consumer) Wait() {
	c.wg.Wait()
}

func (c *Consumer) consume(ctx context.Context, topic string, ch <-chan *message.Message, h func(context.Context, *message.Message) error) {
	defer c.wg.Done()

	l := c.logger.With().Str("topic", topic).Logger()
	l.Debug().Msg("consumer started")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			if err := h(ctx, msg); err != nil {
				l.Warn().Err(err).Str("uuid", msg.UUID).Msg("handle message failed")
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}
}

func (c *Consumer) handleGalleryChanged(ctx context.Context, msg *message.Message) error {
	env, err := queue.ParseGalleryChanged(msg)
	if err != nil {
		// 无法解析的消息重投也不会成功
		c.logger.Warn().Err(err).Str("uuid", msg.UUID).Msg("drop malformed gallery.changed")
		return nil
	}

	if c.inv == nil {
		return nil
	}

	c.logger.Debug().
		Strs("galleries", env.Payload.Galleries).
		Str("reason", env.Payload.Reason).
		Str("producer", env.Header.Producer).
		Msg("gallery changed, invalidating cache")

	return c.inv.Invalidate(ctx, env.Payload.Galleries...)
}

func (c *Consumer) handleContactReceived(_ context.Context, msg *message.Message) error {
	env, err := queue.ParseContactReceived(msg)
	if err != nil {
		c.logger.Warn().Err(err).Str("uuid", msg.UUID).Msg("drop malformed contact.received")
		return nil
	}

	p := env.Payload
	c.logger.Info().
		Str("reference", p.Reference).
		Str("locale", p.Locale).
		Str("transport", p.Transport).
		Bool("delivered", p.Delivered).
		Bool("spam", p.Spam).
		Msg("contact brief recorded")

	return nil
}
