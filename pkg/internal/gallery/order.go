package gallery

import (
	"sort"

	"github.com/yeisme/folio/pkg/internal/types"
)

// SortChronological 按创建时间升序稳定排序，时间相同按 public id.
func SortChronological(resources []types.MediaResource) {
	sort.SliceStable(resources, func(i, j int) bool {
		return chronoLess(resources[i], resources[j])
	})
}

func chronoLess(a, b types.MediaResource) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}

	return a.PublicID < b.PublicID
}

// SortFeatured 按排序字段升序，缺失或非法的排在最后，其余按时间兜底.
func SortFeatured(resources []types.MediaResource, orderKey string) {
	sort.SliceStable(resources, func(i, j int) bool {
		oi, okI := resources[i].Order(orderKey)
		oj, okJ := resources[j].Order(orderKey)

		switch {
		case okI && okJ && oi != oj:
			return oi < oj
		case okI != okJ:
			return okI
		default:
			return chronoLess(resources[i], resources[j])
		}
	})
}

// IDs 提取 public id 列表.
func IDs(resources []types.MediaResource) []string {
	ids := make([]string, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.PublicID)
	}

	return ids
}

// MaxOrder 返回可解析排序值中的最大值，没有时为 0.
func MaxOrder(resources []types.MediaResource, orderKey string) int {
	maxOrder := 0

	for _, r := range resources {
		if n, ok := r.Order(orderKey); ok && n > maxOrder {
			maxOrder = n
		}
	}

	return maxOrder
}
