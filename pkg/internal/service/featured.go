package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/storage/media"
	"github.com/yeisme/folio/pkg/internal/types"
	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/queue"
)

var errWriteRejected = errors.New("metadata write rejected")

// FeaturedService 维护首页精选集：成员由标签决定，顺序由 featured_order 元数据决定.
// 写操作之间没有锁，并发修改时以最后一次写入为准.
type FeaturedService struct {
	media      MediaStore
	gallery    *GalleryService
	cfg        configs.FeaturedConfig
	logger     *zerolog.Logger
	newBackOff func() backoff.BackOff
}

// NewFeaturedService 从 context 获取依赖实例.
func NewFeaturedService(c context.Context) *FeaturedService {
	return NewFeaturedServiceWith(DepsFromContext(c))
}

// NewFeaturedServiceWith 使用显式依赖创建服务.
func NewFeaturedServiceWith(d Deps) *FeaturedService {
	g := NewGalleryServiceWith(d)

	return &FeaturedService{
		media:      d.Media,
		gallery:    g,
		cfg:        d.config().Featured,
		logger:     nlog.With("featured"),
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second

	return b
}

// List 返回排序后的精选资源.
func (s *FeaturedService) List(ctx context.Context) []types.MediaResource {
	list := s.media.ListByTag(ctx, s.cfg.Tag)
	gallery.SortFeatured(list, s.cfg.OrderKey)

	return list
}

// IDs 返回排序后的精选 public id.
func (s *FeaturedService) IDs(ctx context.Context) []string {
	return gallery.IDs(s.List(ctx))
}

// Add 加入精选集并排在末尾. 返回值表示打标签是否成功，排序写入失败只记录在结果中.
func (s *FeaturedService) Add(ctx context.Context, publicID string) (types.AddResult, bool) {
	if publicID == "" {
		return types.AddResult{}, false
	}

	if !s.media.SetTag(ctx, publicID, s.cfg.Tag, media.TagAdd) {
		return types.AddResult{}, false
	}

	next := gallery.MaxOrder(s.List(ctx), s.cfg.OrderKey) + 1
	res := types.AddResult{Order: next}

	res.OrderWritten = s.media.SetMetadata(ctx, publicID, map[string]string{
		s.cfg.OrderKey: strconv.Itoa(next),
	})
	recordWrite(res.OrderWritten)

	if !res.OrderWritten {
		s.logger.Warn().Str("public_id", publicID).Int("order", next).Msg("featured order write failed, image stays tagged")
	}

	s.changed(ctx, queue.ReasonFeatured, publicID)

	return res, true
}

// Remove 移出精选集，只移除标签，残留的排序值不清理.
func (s *FeaturedService) Remove(ctx context.Context, publicID string) bool {
	if publicID == "" {
		return false
	}

	if !s.media.SetTag(ctx, publicID, s.cfg.Tag, media.TagRemove) {
		return false
	}

	s.changed(ctx, queue.ReasonUnfeatured, publicID)

	return true
}

// Move 与相邻元素交换位置，返回交换后的顺序.
// 不在精选集中返回当前顺序与 false；已在边界时不写入，返回当前顺序与 true.
func (s *FeaturedService) Move(ctx context.Context, publicID string, dir types.Direction) ([]string, bool) {
	list := s.List(ctx)
	ids := gallery.IDs(list)

	idx := indexOf(ids, publicID)
	if idx < 0 {
		return ids, false
	}

	var other int

	switch dir {
	case types.DirectionUp:
		other = idx - 1
	case types.DirectionDown:
		other = idx + 1
	default:
		return ids, false
	}

	if other < 0 || other >= len(ids) {
		return ids, true
	}

	next := make([]string, len(ids))
	copy(next, ids)
	next[idx], next[other] = next[other], next[idx]

	// 两个新值必须严格落在相邻成员的存储值之间，否则整体重写
	if !s.fits(list, min(idx, other)) {
		s.logger.Debug().Str("public_id", publicID).Msg("featured swap does not fit neighbours, renormalizing")

		return next, s.Reorder(ctx, next)
	}

	ok := s.writeOrders(ctx, map[string]int{
		next[idx]:   idx + 1,
		next[other]: other + 1,
	})
	if ok {
		s.changed(ctx, queue.ReasonReordered, next[idx], next[other])
	}

	return next, ok
}

// fits 判断位置 lo 与 lo+1 写入 lo+1、lo+2 后顺序是否成立：
// 前一个成员的排序值小于 lo+1，后一个成员的排序值大于 lo+2，缺失的排序值视为无穷大.
func (s *FeaturedService) fits(list []types.MediaResource, lo int) bool {
	hi := lo + 1

	if lo > 0 {
		n, ok := list[lo-1].Order(s.cfg.OrderKey)
		if !ok || n >= lo+1 {
			return false
		}
	}

	if hi+1 < len(list) {
		if n, ok := list[hi+1].Order(s.cfg.OrderKey); ok && n <= hi+1 {
			return false
		}
	}

	return true
}

// Reorder 按给定顺序写入 1..n，空值与重复值会被丢弃. 部分失败不回滚.
func (s *FeaturedService) Reorder(ctx context.Context, orderedIDs []string) bool {
	ids := cleanIDs(orderedIDs)
	if len(ids) == 0 {
		return true
	}

	positions := make(map[string]int, len(ids))
	for i, id := range ids {
		positions[id] = i + 1
	}

	ok := s.writeOrders(ctx, positions)
	if ok {
		s.changed(ctx, queue.ReasonReordered, ids...)
	}

	return ok
}

// writeOrders 并发写入排序值，每次写入按退避策略重试.
func (s *FeaturedService) writeOrders(ctx context.Context, positions map[string]int) bool {
	var (
		g      errgroup.Group
		failed atomic.Int32
	)

	limit := s.cfg.Parallelism
	if limit <= 0 {
		limit = configs.DefaultFeaturedParallelism
	}

	g.SetLimit(limit)

	for id, pos := range positions {
		g.Go(func() error {
			fields := map[string]string{s.cfg.OrderKey: strconv.Itoa(pos)}

			op := func() error {
				if s.media.SetMetadata(ctx, id, fields) {
					return nil
				}

				return errWriteRejected
			}

			b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.cfg.WriteRetries), ctx)
			err := backoff.Retry(op, b)
			recordWrite(err == nil)

			if err != nil {
				failed.Add(1)
				s.logger.Warn().Err(err).Str("public_id", id).Int("order", pos).Msg("featured order write failed")
			}

			return nil
		})
	}

	_ = g.Wait()

	return failed.Load() == 0
}

func recordWrite(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}

	metrics.FeaturedWrites.WithLabelValues(outcome).Inc()
}

func (s *FeaturedService) changed(ctx context.Context, reason string, ids ...string) {
	s.gallery.Changed(ctx, reason, []string{string(gallery.Featured)}, ids...)
}

// cleanIDs 去掉空白与重复，保持首次出现的顺序.
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}

	return -1
}
