package mq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/yeisme/folio/pkg/configs"
)

func init() {
	RegisterFactory(configs.MQTypeNATS, natsFactory)
}

// natsFactory 连接 NATS，多实例部署时 gallery.changed 在实例间广播，使各实例的投影缓存一起失效.
// 订阅不设队列组，每个实例都会收到全部事件.
func natsFactory(_ context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	url := natsURL(cfg)

	opts, err := natsOptions(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	js := jetStreamConfig(cfg)
	marshaler := &nats.JSONMarshaler{}

	if !js.Disabled {
		logger.Info("nats jetstream enabled", watermill.LogFields{
			"auto_provision": js.AutoProvision,
			"durable_prefix": js.DurablePrefix,
		})
	}

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         url,
		NatsOptions: opts,
		JetStream:   js,
		Marshaler:   marshaler,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := nats.NewSubscriber(nats.SubscriberConfig{
		URL:         url,
		NatsOptions: opts,
		JetStream:   js,
		Unmarshaler: marshaler,
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, err
	}

	return pub, sub, nil
}

// natsURL 集群地址优先于单一 URL.
func natsURL(cfg *configs.MQConfig) string {
	if len(cfg.ClusterURLs) > 0 {
		return strings.Join(cfg.ClusterURLs, ",")
	}

	return cfg.URL
}

// natsOptions 组装连接选项. 认证优先级：JWT+seed，仅 nkey seed，用户名密码.
func natsOptions(cfg *configs.MQConfig, logger watermill.LoggerAdapter) ([]nc.Option, error) {
	opts := []nc.Option{
		nc.Name(cfg.ClientID),
		nc.MaxReconnects(cfg.MaxReconnects),
		nc.ReconnectWait(cfg.GetReconnectWait()),
		nc.PingInterval(time.Duration(cfg.PingInterval) * time.Second),
		nc.ReconnectBufSize(cfg.BufferSize),
		nc.RetryOnFailedConnect(true),
		nc.DisconnectErrHandler(func(_ *nc.Conn, err error) {
			if err != nil {
				logger.Error("nats disconnected", err, nil)
			}
		}),
		nc.ReconnectHandler(func(conn *nc.Conn) {
			logger.Info("nats reconnected", watermill.LogFields{"url": conn.ConnectedUrl()})
		}),
	}

	switch {
	case cfg.JWT != "":
		opts = append(opts, nc.UserJWTAndSeed(cfg.JWT, cfg.NKey))
	case cfg.NKey != "":
		kp, err := nkeys.FromSeed([]byte(cfg.NKey))
		if err != nil {
			return nil, fmt.Errorf("nats nkey seed: %w", err)
		}

		pub, err := kp.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("nats nkey public key: %w", err)
		}

		opts = append(opts, nc.Nkey(pub, kp.Sign))
	case cfg.User != "":
		opts = append(opts, nc.UserInfo(cfg.User, cfg.Password))
	}

	return opts, nil
}

func jetStreamConfig(cfg *configs.MQConfig) nats.JetStreamConfig {
	if !cfg.JetStreamEnabled {
		return nats.JetStreamConfig{Disabled: true}
	}

	return nats.JetStreamConfig{
		AutoProvision: cfg.JetStreamAutoProvision,
		TrackMsgId:    cfg.JetStreamTrackMsgID,
		DurablePrefix: cfg.JetStreamDurablePrefix,
	}
}
