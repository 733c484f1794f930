package types

// 精选集操作.
const (
	FeaturedActionAdd     = "add"
	FeaturedActionRemove  = "remove"
	FeaturedActionReorder = "reorder"
	FeaturedActionMove    = "move"
)

// Direction 移动方向.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// FeaturedRequest POST /api/admin/featured 请求体.
type FeaturedRequest struct {
	PublicID   string    `json:"publicId"   rule:"omitempty,public_id"`
	Action     string    `json:"action"     rule:"required,oneof=add remove reorder move"`
	OrderedIDs []string  `json:"orderedIds"`
	Direction  Direction `json:"direction"  rule:"omitempty,oneof=up down"`
}

// FeaturedResponse 精选集写操作结果.
type FeaturedResponse struct {
	OK    bool     `json:"ok"`
	Order []string `json:"order,omitempty"`

	// Result 仅 add 操作返回
	Result *AddResult `json:"result,omitempty"`
}

// AddResult 加入精选集的结果.
type AddResult struct {
	Order        int  `json:"order"`
	OrderWritten bool `json:"order_written"`
}

// DeleteImageRequest DELETE /api/admin/gallery 请求体.
type DeleteImageRequest struct {
	PublicID string `json:"publicId" rule:"omitempty,public_id"`
}
