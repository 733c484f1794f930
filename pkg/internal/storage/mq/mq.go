// Package mq 提供基于 Watermill 库的统一消息队列操作接口.
// 支持发布/订阅模式，并通过工厂模式抽象不同的 MQ 实现.
//
// 支持的 MQ 类型：
//   - gochannel（进程内，默认）
//   - NATS（支持 JetStream）
//
// 主题会自动加上配置中的 subject_prefix.
//
// 使用示例：
//
//	client, err := mq.New(ctx, &cfg.MQ, cfg.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	msg := message.NewMessage(watermill.NewUUID(), []byte("hello world"))
//	err = client.Publish(ctx, "gallery.changed", msg)
//
//	ch, err := client.Subscribe(ctx, "gallery.changed")
package mq

import (
	"context"
	"errors"
	"fmt"
	"sort"

	watermill "github.com/ThreeDotsLabs/watermill"
	wmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/folio/pkg/configs"
	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var (
	factories = map[configs.MQType]Factory{}

	errNotInitialized = errors.New("mq client not initialized")
)

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// RegisteredTypes 返回已注册的 MQ 类型.
func RegisteredTypes() []string {
	out := make([]string, 0, len(factories))
	for t := range factories {
		out = append(out, string(t))
	}

	sort.Strings(out)

	return out
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	Type MQType

	publisher  message.Publisher
	subscriber message.Subscriber
	prefix     string
}

// MQType 是 configs.MQType 的别名，便于调用方少引入一个包.
type MQType = configs.MQType

// Topic 返回加上前缀后的完整主题名.
func (c *Client) Topic(topic string) string {
	if c == nil {
		return topic
	}

	return c.prefix + topic
}

// Publish 便捷发布.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return errNotInitialized
	}

	if err := c.publisher.Publish(c.Topic(topic), msgs...); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}

// Subscribe 便捷订阅，ctx 结束时通道关闭.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, errNotInitialized
	}

	ch, err := c.subscriber.Subscribe(ctx, c.Topic(topic))
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	return ch, nil
}

// Close 关闭资源.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}

	// gochannel 的 publisher 与 subscriber 是同一个对象
	if c.subscriber != nil && any(c.subscriber) != any(c.publisher) {
		errs = append(errs, c.subscriber.Close())
	}

	return errors.Join(errs...)
}

// New 按配置创建消息队列客户端，metrics 启用且 mq_metrics 打开时会装饰 Prometheus 指标.
func New(ctx context.Context, cfg *configs.MQConfig, metricsCfg configs.MetricsConfig) (*Client, error) {
	if cfg == nil {
		def := configs.Defaults().MQ
		cfg = &def
	}

	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", cfg.Type)
	}

	logger := NewLoggerAdapter(nlog.With("mq"))

	pub, sub, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", cfg.Type, err)
	}

	if metricsCfg.Enabled && metricsCfg.MQMetrics {
		builder := wmetrics.NewPrometheusMetricsBuilder(metrics.GetRegistry(), "folio", "mq")

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(cfg.Type)).Str("prefix", cfg.SubjectPrefix).Msg("MQ client initialized")

	return &Client{Type: cfg.Type, publisher: pub, subscriber: sub, prefix: cfg.SubjectPrefix}, nil
}
