package cache_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/internal/storage/kv"
)

// testImage 测试用的图片结构体.
type testImage struct {
	ID     int    `json:"id"`
	Src    string `json:"src"`
	Aspect string `json:"aspect"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, kv.ErrNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.data[key]

	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	keys := make([]string, 0, len(m.data))

	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestNewCache 测试 NewCache 函数.
func TestNewCache(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

// TestCache_GetSet 测试 Get/Set 与命名空间.
func TestCache_GetSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore, cache.WithNamespace("gallery:"))
	ctx := context.Background()

	_, err := cache.Get[testImage](ctx, c, "nonexistent")
	if !cache.IsMiss(err) {
		t.Errorf("Expected miss for nonexistent key, got %v", err)
	}

	img := testImage{ID: 1, Src: "https://example.com/a.jpg", Aspect: "portrait"}
	if err := cache.Set(ctx, c, "portraits", img, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	if _, exists := mockStore.data["gallery:portraits"]; !exists {
		t.Fatal("Expected namespaced key in store")
	}

	got, err := cache.Get[testImage](ctx, c, "portraits")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if got != img {
		t.Errorf("Retrieved %+v does not match original %+v", got, img)
	}
}

// TestCache_Delete 测试 Delete 与 Exists.
func TestCache_Delete(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	if err := cache.Set(ctx, c, "img:3", testImage{ID: 3}, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "img:3")
	if err != nil || !exists {
		t.Fatalf("Key should exist before deletion (err=%v)", err)
	}

	if err := c.Delete(ctx, "img:3"); err != nil {
		t.Fatalf("Failed to delete cache: %v", err)
	}

	exists, err = c.Exists(ctx, "img:3")
	if err != nil {
		t.Fatalf("Failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

// TestGetOrLoad_Hit 测试第二次调用命中缓存且不再加载.
func TestGetOrLoad_Hit(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (testImage, time.Duration, error) {
		calls++
		return testImage{ID: 5, Src: "s"}, time.Minute, nil
	}

	first, hit, err := cache.GetOrLoad(ctx, c, "img:5", loader)
	if err != nil || hit {
		t.Fatalf("first load: hit=%v err=%v", hit, err)
	}

	second, hit, err := cache.GetOrLoad(ctx, c, "img:5", loader)
	if err != nil || !hit {
		t.Fatalf("second load: hit=%v err=%v", hit, err)
	}

	if calls != 1 {
		t.Errorf("Expected loader to be called once, got %d", calls)
	}

	if first != second {
		t.Errorf("Results don't match: %+v vs %+v", first, second)
	}
}

// TestGetOrLoad_LoaderError 测试 loader 返回错误时不写缓存.
func TestGetOrLoad_LoaderError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	boom := errors.New("loader error")

	_, _, err := cache.GetOrLoad(ctx, c, "img:error", func(context.Context) (testImage, time.Duration, error) {
		return testImage{}, 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected loader error, got %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Error("Failed loads must not be cached")
	}
}

// TestGetOrLoad_CanceledCaller 测试调用方 ctx 已取消时加载与回写照常进行.
func TestGetOrLoad_CanceledCaller(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, _, err := cache.GetOrLoad(ctx, c, "img:7", func(ctx context.Context) (testImage, time.Duration, error) {
		if err := ctx.Err(); err != nil {
			return testImage{}, 0, err
		}

		return testImage{ID: 7}, time.Minute, nil
	})
	if err != nil {
		t.Fatalf("load with canceled caller: %v", err)
	}

	if got.ID != 7 {
		t.Errorf("Expected ID 7, got %d", got.ID)
	}

	if len(mockStore.data) != 1 {
		t.Error("Result should be cached")
	}
}

// TestGetOrLoad_Concurrent 测试并发未命中只加载一次.
func TestGetOrLoad_Concurrent(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	var (
		loads   atomic.Int32
		release = make(chan struct{})
		wg      sync.WaitGroup
	)

	loader := func(context.Context) ([]string, time.Duration, error) {
		loads.Add(1)
		<-release

		return []string{"a", "b"}, time.Minute, nil
	}

	const workers = 8

	results := make([][]string, workers)
	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, _, err := cache.GetOrLoad(ctx, c, "featured", loader)
			if err != nil {
				t.Errorf("GetOrLoad failed: %v", err)
			}

			results[i] = v
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := loads.Load(); n < 1 || n > 2 {
		t.Errorf("Expected concurrent misses to collapse, loader ran %d times", n)
	}

	for i, r := range results {
		if len(r) != 2 {
			t.Errorf("Worker %d got %v", i, r)
		}
	}

	_, hit, err := cache.GetOrLoad(ctx, c, "featured", loader)
	if err != nil || !hit {
		t.Errorf("Expected cache hit after load, hit=%v err=%v", hit, err)
	}
}

// TestCache_Clear 测试 Clear 只清理当前命名空间.
func TestCache_Clear(t *testing.T) {
	mockStore := newMockKVStore()
	gallery := cache.NewCache(mockStore, cache.WithNamespace("gallery:"))
	other := cache.NewCache(mockStore, cache.WithNamespace("other:"))
	ctx := context.Background()

	for i := range 3 {
		if err := cache.Set(ctx, gallery, fmt.Sprintf("g%d", i), testImage{ID: i}, 0); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}

	if err := cache.Set(ctx, other, "keep", testImage{ID: 9}, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	if err := gallery.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 1 {
		t.Errorf("Expected 1 item after clear, got %d", len(mockStore.data))
	}
}
