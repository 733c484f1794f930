package types

// 管理面板动作.
const (
	PanelActionDelete    = "delete"
	PanelActionFeature   = "feature"
	PanelActionUnfeature = "unfeature"
	PanelActionMoveUp    = "move_up"
	PanelActionMoveDown  = "move_down"
	PanelActionReorder   = "reorder"
)

// PanelAction POST /api/admin/panel/:gallery/actions 请求体.
type PanelAction struct {
	Action     string   `json:"action"     rule:"required,oneof=delete feature unfeature move_up move_down reorder"`
	PublicID   string   `json:"publicId"   rule:"omitempty,public_id"`
	OrderedIDs []string `json:"orderedIds"`
}

// PanelRow 面板中的一张图片.
type PanelRow struct {
	MediaResource

	Aspect           Aspect `json:"aspect"`
	Alt              string `json:"alt"`
	Featured         bool   `json:"featured"`
	FeaturedPosition int    `json:"featured_position,omitempty"` // 1 起，非精选为 0
}

// UploadWidget 上传组件配置.
type UploadWidget struct {
	Enabled      bool     `json:"enabled"`
	CloudName    string   `json:"cloud_name,omitempty"`
	UploadPreset string   `json:"upload_preset,omitempty"`
	Folder       string   `json:"folder,omitempty"`
	Tags         []string `json:"tags,omitempty"` // 上传后自动附加的标签
}

// PanelView 管理面板视图模型.
type PanelView struct {
	Gallery       GalleryInfo   `json:"gallery"`
	Galleries     []GalleryInfo `json:"galleries"`
	Rows          []PanelRow    `json:"rows"`
	Upload        UploadWidget  `json:"upload"`
	WritesEnabled bool          `json:"writes_enabled"`
	Message       string        `json:"message,omitempty"`
}

// PanelActionResponse 动作执行结果.
type PanelActionResponse struct {
	OK   bool      `json:"ok"`
	View PanelView `json:"view"`
}
