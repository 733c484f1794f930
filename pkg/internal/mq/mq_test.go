package mq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/configs"
	mqc "github.com/yeisme/folio/pkg/internal/storage/mq"
	"github.com/yeisme/folio/pkg/queue"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, names)

	return r.err
}

func (r *recordingInvalidator) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([][]string(nil), r.calls...)
}

func newClient(t *testing.T) *mqc.Client {
	t.Helper()

	cfg := configs.Defaults().MQ

	client, err := mqc.New(t.Context(), &cfg, configs.MetricsConfig{})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestGalleryChangedInvalidates(t *testing.T) {
	client := newClient(t)
	inv := &recordingInvalidator{}

	ctx, cancel := context.WithCancel(t.Context())
	c := NewConsumer(client, inv)
	require.NoError(t, c.Start(ctx))

	require.NoError(t, queue.PublishGalleryChanged(ctx, client, queue.GalleryChangedPayload{
		Galleries: []string{"featured"},
		Reason:    queue.ReasonReordered,
	}))

	// 无法解析的消息被丢弃，不影响后续消息
	require.NoError(t, client.Publish(ctx, queue.TopicGalleryChanged,
		message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	require.NoError(t, queue.PublishGalleryChanged(ctx, client, queue.GalleryChangedPayload{
		Reason: queue.ReasonDeleted,
	}))

	require.Eventually(t, func() bool { return len(inv.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)

	calls := inv.snapshot()
	assert.Equal(t, []string{"featured"}, calls[0])
	assert.Empty(t, calls[1])

	cancel()
	c.Wait()
}

// chanSubscriber 每个主题一个可控的通道.
type chanSubscriber map[string]chan *message.Message

func (s chanSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	return s[topic], nil
}

func TestAckAndNack(t *testing.T) {
	sub := chanSubscriber{
		queue.TopicGalleryChanged:  make(chan *message.Message, 1),
		queue.TopicContactReceived: make(chan *message.Message, 1),
	}
	inv := &recordingInvalidator{err: errors.New("kv down")}

	ctx, cancel := context.WithCancel(t.Context())
	c := NewConsumer(sub, inv)
	require.NoError(t, c.Start(ctx))

	contact, err := queue.NewMessage(t.Context(), queue.TopicContactReceived, queue.ContactReceivedPayload{
		Reference: "01HZX",
		Delivered: true,
	})
	require.NoError(t, err)
	sub[queue.TopicContactReceived] <- contact

	select {
	case <-contact.Acked():
	case <-time.After(2 * time.Second):
		t.Fatal("contact.received not acked")
	}

	changed, err := queue.NewMessage(t.Context(), queue.TopicGalleryChanged, queue.GalleryChangedPayload{
		Galleries: []string{"art"},
	})
	require.NoError(t, err)
	sub[queue.TopicGalleryChanged] <- changed

	// 缓存清理失败时 Nack 以便重投
	select {
	case <-changed.Nacked():
	case <-time.After(2 * time.Second):
		t.Fatal("gallery.changed not nacked")
	}

	assert.Equal(t, [][]string{{"art"}}, inv.snapshot())

	cancel()
	c.Wait()
}

type failingSubscriber struct{}

func (failingSubscriber) Subscribe(context.Context, string) (<-chan *message.Message, error) {
	return nil, errors.New("not connected")
}

func TestStartSubscribeError(t *testing.T) {
	c := NewConsumer(failingSubscriber{}, nil)
	require.Error(t, c.Start(t.Context()))
}
