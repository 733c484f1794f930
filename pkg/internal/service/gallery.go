package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/types"
	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/queue"
)

// GalleryService 把媒体存储内容投影为公开图集，负责缓存与静态兜底.
type GalleryService struct {
	media    MediaStore
	cache    *cache.Cache
	events   queue.Publisher
	gallery  configs.GalleryConfig
	featured configs.FeaturedConfig
	logger   *zerolog.Logger
}

// NewGalleryService 从 context 获取依赖实例.
func NewGalleryService(c context.Context) *GalleryService {
	return NewGalleryServiceWith(DepsFromContext(c))
}

// NewGalleryServiceWith 使用显式依赖创建服务.
func NewGalleryServiceWith(d Deps) *GalleryService {
	if d.Media == nil {
		nlog.Logger().Fatal().Msg("media client not initialized")
	}

	cfg := d.config()

	return &GalleryService{
		media:    d.Media,
		cache:    d.Cache,
		events:   d.Events,
		gallery:  cfg.Gallery,
		featured: cfg.Featured,
		logger:   nlog.With("gallery"),
	}
}

// Info 返回图集描述.
func (s *GalleryService) Info(def gallery.Definition) types.GalleryInfo {
	return def.Info(s.gallery.RootFolder, s.featured.Tag)
}

// Infos 返回全部图集描述.
func (s *GalleryService) Infos() []types.GalleryInfo {
	defs := gallery.All()

	out := make([]types.GalleryInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, s.Info(d))
	}

	return out
}

// Project 返回公开图集，媒体存储为空或不可用时使用静态兜底. 只有未知图集会返回错误.
func (s *GalleryService) Project(ctx context.Context, name string) (types.GalleryResponse, error) {
	def, err := gallery.Lookup(name)
	if err != nil {
		return types.GalleryResponse{}, err
	}

	if s.cache == nil || s.gallery.CacheTTL <= 0 {
		resp, _, _ := s.project(ctx, def)
		return resp, nil
	}

	resp, hit, err := cache.GetOrLoad(ctx, s.cache, name, func(ctx context.Context) (types.GalleryResponse, time.Duration, error) {
		return s.project(ctx, def)
	})
	if err != nil {
		// loader 不会失败；缓存层出错时直接投影
		s.logger.Warn().Err(err).Str("gallery", name).Msg("gallery cache failed")

		resp, _, _ = s.project(ctx, def)
	}

	result := "miss"
	if hit {
		result = "hit"
	} else if resp.Fallback && s.gallery.FallbackTTL <= 0 {
		// fallback_ttl=0 表示兜底结果不缓存
		_ = s.cache.Delete(ctx, name)
	}

	metrics.CacheResults.WithLabelValues(name, result).Inc()

	return resp, nil
}

// project 执行一次实际投影，返回值的 TTL 区分正常结果与兜底结果.
func (s *GalleryService) project(ctx context.Context, def gallery.Definition) (types.GalleryResponse, time.Duration, error) {
	resources := s.resources(ctx, def)

	resp := types.GalleryResponse{
		Name:   string(def.Name),
		Images: gallery.ToImages(resources),
	}

	if len(resp.Images) == 0 {
		resp.Images = gallery.Fallback(def.Name)
		resp.Fallback = true

		metrics.CacheResults.WithLabelValues(string(def.Name), "fallback").Inc()
		s.logger.Debug().Str("gallery", string(def.Name)).Msg("serving static fallback")

		return resp, s.gallery.FallbackTTL, nil
	}

	return resp, s.gallery.CacheTTL, nil
}

func (s *GalleryService) resources(ctx context.Context, def gallery.Definition) []types.MediaResource {
	if def.Source == gallery.SourceTag {
		list := s.media.ListByTag(ctx, s.featured.Tag)
		gallery.SortFeatured(list, s.featured.OrderKey)

		return list
	}

	list := s.media.ListByFolder(ctx, s.gallery.Folder(string(def.Name)))
	gallery.SortChronological(list)

	return list
}

// Resources 返回图集的原始资源（不经过缓存），排序规则与公开投影一致.
func (s *GalleryService) Resources(ctx context.Context, name string) ([]types.MediaResource, error) {
	def, err := gallery.Lookup(name)
	if err != nil {
		return nil, err
	}

	return s.resources(ctx, def), nil
}

// ListFolder 返回任意目录下的原始资源，保持媒体存储返回的顺序.
func (s *GalleryService) ListFolder(ctx context.Context, folder string) []types.MediaResource {
	if folder == "" {
		folder = s.gallery.RootFolder
	}

	return s.media.ListByFolder(ctx, folder)
}

// DeleteImage 删除图片并失效全部图集.
func (s *GalleryService) DeleteImage(ctx context.Context, publicID string) (bool, error) {
	if publicID == "" {
		return false, ErrMissingPublicID
	}

	if !s.media.Delete(ctx, publicID) {
		return false, nil
	}

	s.logger.Info().Str("public_id", publicID).Msg("image deleted")
	s.Changed(ctx, queue.ReasonDeleted, nil, publicID)

	return true, nil
}

// Invalidate 删除指定图集的缓存，不传名称时清空全部.
func (s *GalleryService) Invalidate(ctx context.Context, names ...string) error {
	if s.cache == nil {
		return nil
	}

	if len(names) == 0 {
		return s.cache.Clear(ctx)
	}

	var errs []error

	for _, n := range names {
		if err := s.cache.Delete(ctx, n); err != nil && !cache.IsMiss(err) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Changed 失效本地缓存并广播 gallery.changed，galleries 为空表示全部.
func (s *GalleryService) Changed(ctx context.Context, reason string, galleries []string, publicIDs ...string) {
	if err := s.Invalidate(ctx, galleries...); err != nil {
		s.logger.Warn().Err(err).Strs("galleries", galleries).Msg("invalidate gallery cache failed")
	}

	if s.events == nil {
		return
	}

	payload := queue.GalleryChangedPayload{Galleries: galleries, Reason: reason, PublicIDs: publicIDs}
	if err := queue.PublishGalleryChanged(ctx, s.events, payload); err != nil {
		s.logger.Warn().Err(err).Str("reason", reason).Msg("publish gallery.changed failed")
	}
}

// Warm 重新投影全部图集并写入缓存，返回成功从媒体存储加载的图集数.
func (s *GalleryService) Warm(ctx context.Context) (int, error) {
	if s.cache == nil || s.gallery.CacheTTL <= 0 {
		return 0, nil
	}

	live := 0

	var errs []error

	for _, def := range gallery.All() {
		if err := ctx.Err(); err != nil {
			return live, err
		}

		resp, ttl, _ := s.project(ctx, def)
		if resp.Fallback {
			if ttl <= 0 {
				continue
			}
		} else {
			live++
		}

		if err := cache.Set(ctx, s.cache, string(def.Name), resp, ttl); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info().Int("live", live).Msg("gallery cache warmed")

	return live, errors.Join(errs...)
}
