package types

import (
	"strconv"
	"strings"
	"time"
)

// 元数据字段名.
const (
	MetaAlt     = "alt"
	MetaCaption = "caption"
)

// MediaResource 媒体存储中的一张图片.
type MediaResource struct {
	PublicID  string            `json:"public_id"`
	URL       string            `json:"secure_url"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Bytes     int64             `json:"bytes"`
	CreatedAt time.Time         `json:"created_at"`
	Tags      []string          `json:"tags,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Meta 读取元数据字段，缺失时返回空串.
func (r MediaResource) Meta(key string) string {
	if r.Metadata == nil {
		return ""
	}

	return r.Metadata[key]
}

// Order 解析排序字段，只接受正整数.
func (r MediaResource) Order(key string) (int, bool) {
	raw := strings.TrimSpace(r.Meta(key))
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// HasTag 是否带有某个标签.
func (r MediaResource) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// Name 返回 public id 的最后一段.
func (r MediaResource) Name() string {
	if i := strings.LastIndexByte(r.PublicID, '/'); i >= 0 {
		return r.PublicID[i+1:]
	}

	return r.PublicID
}
