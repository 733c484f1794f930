package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/storage/kv"
	"github.com/yeisme/folio/pkg/internal/storage/media"
	"github.com/yeisme/folio/pkg/internal/types"
)

// fakeMedia 内存版媒体存储，行为与真实客户端的退化语义一致.
type fakeMedia struct {
	mu         sync.Mutex
	configured bool
	resources  map[string]*types.MediaResource
	lists      int
	metaWrites []string // "id=order"
	// failMeta 返回 true 时 SetMetadata 失败
	failMeta func(id string) bool
	failTag  bool
	failDel  bool
	// honorCtx 为 true 时已取消的 ctx 读出空列表，与真实客户端一致
	honorCtx bool
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{configured: true, resources: map[string]*types.MediaResource{}}
}

func (f *fakeMedia) add(id string, created time.Time, order string, tags ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := &types.MediaResource{
		PublicID:  id,
		URL:       "https://res.example.com/" + id + ".jpg",
		Width:     800,
		Height:    1200,
		CreatedAt: created,
		Tags:      tags,
		Metadata:  map[string]string{},
	}
	if order != "" {
		r.Metadata["featured_order"] = order
	}

	f.resources[id] = r
}

func (f *fakeMedia) Configured() bool  { return f.configured }
func (f *fakeMedia) CloudName() string { return "demo" }

func (f *fakeMedia) snapshot(keep func(*types.MediaResource) bool) []types.MediaResource {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lists++

	ids := make([]string, 0, len(f.resources))
	for id := range f.resources {
		ids = append(ids, id)
	}

	// 模拟媒体存储的任意返回顺序
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	out := []types.MediaResource{}

	for _, id := range ids {
		r := f.resources[id]
		if !f.configured || !keep(r) {
			continue
		}

		cp := *r
		cp.Tags = append([]string(nil), r.Tags...)
		cp.Metadata = make(map[string]string, len(r.Metadata))

		for k, v := range r.Metadata {
			cp.Metadata[k] = v
		}

		out = append(out, cp)
	}

	return out
}

func (f *fakeMedia) ListByFolder(ctx context.Context, folder string) []types.MediaResource {
	if f.honorCtx && ctx.Err() != nil {
		return []types.MediaResource{}
	}

	prefix := strings.TrimSuffix(folder, "/") + "/"
	return f.snapshot(func(r *types.MediaResource) bool { return strings.HasPrefix(r.PublicID, prefix) })
}

func (f *fakeMedia) ListByTag(ctx context.Context, tag string) []types.MediaResource {
	if f.honorCtx && ctx.Err() != nil {
		return []types.MediaResource{}
	}

	return f.snapshot(func(r *types.MediaResource) bool { return r.HasTag(tag) })
}

func (f *fakeMedia) SetTag(_ context.Context, id, tag string, action media.TagAction) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.resources[id]
	if !f.configured || f.failTag || !ok {
		return false
	}

	var tags []string

	for _, t := range r.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}

	if action == media.TagAdd {
		tags = append(tags, tag)
	}

	r.Tags = tags

	return true
}

func (f *fakeMedia) SetMetadata(_ context.Context, id string, fields map[string]string) bool {
	if len(fields) == 0 {
		return true
	}

	if f.failMeta != nil && f.failMeta(id) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.resources[id]
	if !f.configured || !ok {
		return false
	}

	for k, v := range fields {
		r.Metadata[k] = v
		f.metaWrites = append(f.metaWrites, id+"="+v)
	}

	return true
}

func (f *fakeMedia) Delete(_ context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.configured || f.failDel {
		return false
	}

	if _, ok := f.resources[id]; !ok {
		return false
	}

	delete(f.resources, id)

	return true
}

func (f *fakeMedia) writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := append([]string(nil), f.metaWrites...)
	sort.Strings(out)

	return out
}

func (f *fakeMedia) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lists
}

// recordingEvents 记录发布的事件.
type recordingEvents struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingEvents) Publish(_ context.Context, topic string, _ ...*message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.topics = append(r.topics, topic)

	return nil
}

func (r *recordingEvents) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.topics)
}

func testConfig() *configs.AppConfig {
	cfg := configs.Defaults()
	cfg.Media.CloudName = "demo"
	cfg.Media.UploadPreset = "unsigned"

	return &cfg
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()

	store, err := kv.NewStore(t.Context(), kv.BackendMemory, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return cache.NewCache(store, cache.WithNamespace("gallery:"))
}

func testDeps(t *testing.T, m *fakeMedia) (Deps, *recordingEvents) {
	t.Helper()

	ev := &recordingEvents{}

	return Deps{Media: m, Cache: newTestCache(t), Events: ev, Config: testConfig()}, ev
}

// noWait 测试中去掉退避等待.
func noWait() backoff.BackOff { return &backoff.ZeroBackOff{} }

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return t0.Add(time.Duration(minutes) * time.Minute) }
