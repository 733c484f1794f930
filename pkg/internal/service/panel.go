package service

import (
	"context"
	"fmt"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/types"
)

// 面板提示信息.
const (
	msgReadOnly     = "Media store credentials are not configured. Showing a read-only view."
	msgActionFailed = "The media store rejected the change. Reload and try again."
)

// PanelService 管理面板视图模型：每次动作之后都重新读取媒体存储，不保留乐观状态.
type PanelService struct {
	media    MediaStore
	gallery  *GalleryService
	featured *FeaturedService
	cfg      *configs.AppConfig
}

// NewPanelService 从 context 获取依赖实例.
func NewPanelService(c context.Context) *PanelService {
	return NewPanelServiceWith(DepsFromContext(c))
}

// NewPanelServiceWith 使用显式依赖创建服务.
func NewPanelServiceWith(d Deps) *PanelService {
	f := NewFeaturedServiceWith(d)

	return &PanelService{
		media:    d.Media,
		gallery:  f.gallery,
		featured: f,
		cfg:      d.config(),
	}
}

// Galleries 返回可选择的图集.
func (s *PanelService) Galleries() []types.GalleryInfo {
	return s.gallery.Infos()
}

// View 构建某个图集的面板视图.
func (s *PanelService) View(ctx context.Context, name string) (types.PanelView, error) {
	def, err := gallery.Lookup(name)
	if err != nil {
		return types.PanelView{}, err
	}

	var resources, featured []types.MediaResource

	if def.Source == gallery.SourceTag {
		featured = s.featured.List(ctx)
		resources = featured
	} else {
		resources, _ = s.gallery.Resources(ctx, name)
		featured = s.featured.List(ctx)
	}

	positions := make(map[string]int, len(featured))
	for i, r := range featured {
		positions[r.PublicID] = i + 1
	}

	rows := make([]types.PanelRow, 0, len(resources))
	for _, r := range resources {
		pos := positions[r.PublicID]
		rows = append(rows, types.PanelRow{
			MediaResource:    r,
			Aspect:           gallery.AspectOf(r.Width, r.Height),
			Alt:              gallery.AltOf(r),
			Featured:         pos > 0,
			FeaturedPosition: pos,
		})
	}

	view := types.PanelView{
		Gallery:       s.gallery.Info(def),
		Galleries:     s.Galleries(),
		Rows:          rows,
		Upload:        s.upload(def),
		WritesEnabled: s.media.Configured(),
	}

	if !view.WritesEnabled {
		view.Message = msgReadOnly
	}

	return view, nil
}

func (s *PanelService) upload(def gallery.Definition) types.UploadWidget {
	w := types.UploadWidget{
		Enabled:      s.cfg.Media.UploadEnabled(),
		CloudName:    s.cfg.Media.CloudName,
		UploadPreset: s.cfg.Media.UploadPreset,
	}

	if def.Source == gallery.SourceTag {
		w.Folder = s.cfg.Gallery.RootFolder
		w.Tags = []string{s.cfg.Featured.Tag}
	} else {
		w.Folder = s.cfg.Gallery.Folder(string(def.Name))
	}

	if !w.Enabled {
		return types.UploadWidget{Folder: w.Folder, Tags: w.Tags}
	}

	return w
}

// Apply 执行面板动作并返回刷新后的视图. 第二个返回值是媒体存储是否接受了修改.
func (s *PanelService) Apply(ctx context.Context, name string, action types.PanelAction) (types.PanelView, bool, error) {
	def, err := gallery.Lookup(name)
	if err != nil {
		return types.PanelView{}, false, err
	}

	ok, err := s.apply(ctx, def, action)
	if err != nil {
		return types.PanelView{}, false, err
	}

	view, err := s.View(ctx, name)
	if err != nil {
		return types.PanelView{}, false, err
	}

	if !ok {
		view.Message = msgActionFailed
	}

	return view, ok, nil
}

func (s *PanelService) apply(ctx context.Context, def gallery.Definition, a types.PanelAction) (bool, error) {
	if a.Action != types.PanelActionReorder && a.PublicID == "" {
		return false, ErrMissingPublicID
	}

	ordering := a.Action == types.PanelActionMoveUp ||
		a.Action == types.PanelActionMoveDown ||
		a.Action == types.PanelActionReorder
	if ordering && def.Source != gallery.SourceTag {
		return false, fmt.Errorf("%w: %s only applies to the featured gallery", ErrInvalidAction, a.Action)
	}

	switch a.Action {
	case types.PanelActionDelete:
		return s.gallery.DeleteImage(ctx, a.PublicID)
	case types.PanelActionFeature:
		_, ok := s.featured.Add(ctx, a.PublicID)
		return ok, nil
	case types.PanelActionUnfeature:
		return s.featured.Remove(ctx, a.PublicID), nil
	case types.PanelActionMoveUp:
		_, ok := s.featured.Move(ctx, a.PublicID, types.DirectionUp)
		return ok, nil
	case types.PanelActionMoveDown:
		_, ok := s.featured.Move(ctx, a.PublicID, types.DirectionDown)
		return ok, nil
	case types.PanelActionReorder:
		return s.featured.Reorder(ctx, a.OrderedIDs), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidAction, a.Action)
	}
}
