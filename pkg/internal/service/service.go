package service

import (
	"context"
	"errors"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/configs"
	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/storage/media"
	"github.com/yeisme/folio/pkg/internal/types"
	"github.com/yeisme/folio/pkg/queue"
)

// 业务错误.
var (
	ErrMissingPublicID = errors.New("missing publicId")
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidBrief    = errors.New("name and email are required")
	ErrNoTransport     = errors.New("no delivery transport configured")
	ErrDeliveryFailed  = errors.New("brief delivery failed")
)

// MediaStore 服务层依赖的媒体存储操作，由 storage/media.Client 实现.
// 读操作失败返回空列表，写操作失败返回 false.
type MediaStore interface {
	Configured() bool
	CloudName() string
	ListByFolder(ctx context.Context, folder string) []types.MediaResource
	ListByTag(ctx context.Context, tag string) []types.MediaResource
	SetTag(ctx context.Context, publicID, tag string, action media.TagAction) bool
	SetMetadata(ctx context.Context, publicID string, fields map[string]string) bool
	Delete(ctx context.Context, publicID string) bool
}

// Deps 服务依赖. Events 可以为 nil，此时不发布事件.
type Deps struct {
	Media  MediaStore
	Cache  *cache.Cache
	Events queue.Publisher
	Config *configs.AppConfig
}

// DepsFromContext 从 context 中的 storage manager 组装依赖.
func DepsFromContext(c context.Context) Deps {
	d := Deps{Config: configs.GetConfig()}

	if m := ctxPkg.GetMediaClient(c); m != nil {
		d.Media = m
	}

	d.Cache = ctxPkg.GetGalleryCache(c)

	if mq := ctxPkg.GetMQClient(c); mq != nil {
		d.Events = mq
	}

	return d
}

func (d Deps) config() *configs.AppConfig {
	if d.Config != nil {
		return d.Config
	}

	return configs.GetConfig()
}
