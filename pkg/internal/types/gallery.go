package types

// Aspect 图片方向.
type Aspect string

const (
	AspectPortrait  Aspect = "portrait"
	AspectLandscape Aspect = "landscape"
	AspectSquare    Aspect = "square"
)

// GalleryImage 公开页面使用的图片投影.
type GalleryImage struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Aspect Aspect `json:"aspect"`
}

// GalleryInfo 图集描述.
type GalleryInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Folder string `json:"folder,omitempty"` // 标签图集为空
	Tag    string `json:"tag,omitempty"`
}

// GalleryResponse GET /api/v1/galleries/:name 响应.
type GalleryResponse struct {
	Name     string         `json:"name"`
	Fallback bool           `json:"fallback"`
	Images   []GalleryImage `json:"images"`
}
