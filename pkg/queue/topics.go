// Package queue 定义消息主题常量，供发布/订阅使用.
package queue

// 主题命名规范：<域>.<动作>，实际 subject 会由 MQ 客户端加上 subject_prefix（默认 "folio."）.
const (
	// TopicGalleryChanged 图集内容或精选顺序发生变化，消费者据此失效投影缓存.
	TopicGalleryChanged = "gallery.changed"
	// TopicContactReceived 收到一份联系表单，用于审计与统计.
	TopicContactReceived = "contact.received"
)

// AllTopics 全部主题，CLI 列举使用.
var AllTopics = []string{
	TopicGalleryChanged,
	TopicContactReceived,
}
