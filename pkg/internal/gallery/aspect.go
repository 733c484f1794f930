package gallery

import (
	"github.com/yeisme/folio/pkg/internal/types"
)

// 方向判定阈值.
const (
	portraitBelow  = 0.85
	landscapeAbove = 1.15
)

// AspectOf 按宽高比判定方向，高度非正时视为正方形.
func AspectOf(width, height int) types.Aspect {
	if height <= 0 || width <= 0 {
		return types.AspectSquare
	}

	ratio := float64(width) / float64(height)

	switch {
	case ratio < portraitBelow:
		return types.AspectPortrait
	case ratio > landscapeAbove:
		return types.AspectLandscape
	default:
		return types.AspectSquare
	}
}

// AltOf alt 元数据优先，否则取 public id 最后一段.
func AltOf(r types.MediaResource) string {
	if alt := r.Meta(types.MetaAlt); alt != "" {
		return alt
	}

	return r.Name()
}

// ToImage 把媒体资源投影为公开图片.
func ToImage(r types.MediaResource) types.GalleryImage {
	return types.GalleryImage{
		Src:    r.URL,
		Alt:    AltOf(r),
		Aspect: AspectOf(r.Width, r.Height),
	}
}

// ToImages 批量投影.
func ToImages(resources []types.MediaResource) []types.GalleryImage {
	out := make([]types.GalleryImage, 0, len(resources))
	for _, r := range resources {
		out = append(out, ToImage(r))
	}

	return out
}
