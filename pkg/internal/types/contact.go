package types

import "time"

// ContactBrief 联系表单提交的项目需求.
type ContactBrief struct {
	Locale   string `form:"locale"   json:"locale"`
	Name     string `form:"name"     json:"name"`
	Company  string `form:"company"  json:"company"`
	Email    string `form:"email"    json:"email"`
	Type     string `form:"type"     json:"type"`
	People   string `form:"people"   json:"people"`
	Location string `form:"location" json:"location"`
	Date     string `form:"date"     json:"date"`
	Formats  string `form:"formats"  json:"formats"`
	Timeline string `form:"timeline" json:"timeline"`
	Invoice  string `form:"invoice"  json:"invoice"`
	NDA      string `form:"nda"      json:"nda"`
	Notes    string `form:"notes"    json:"notes"`
	Website  string `form:"website"  json:"website"` // 蜜罐字段，真人不会填写
}

// ContactEnvelope webhook 投递的消息体.
type ContactEnvelope struct {
	Source      string       `json:"source"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Payload     ContactBrief `json:"payload"`
	Text        string       `json:"text"`
}

// ContactResult 投递结果.
type ContactResult struct {
	Reference string `json:"reference"`
	Transport string `json:"transport,omitempty"`
	Spam      bool   `json:"spam,omitempty"`
}
