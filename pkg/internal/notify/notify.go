// Package notify 把联系表单投递到邮件或 webhook.
package notify

import (
	"context"
	"strings"

	"github.com/yeisme/folio/pkg/internal/types"
)

// Transport 一种投递方式.
type Transport interface {
	Name() string
	Send(ctx context.Context, brief types.ContactBrief) error
}

// Subject 邮件标题.
func Subject(b types.ContactBrief) string {
	name := b.Name
	if name == "" {
		name = "No name"
	}

	return "New brief — " + name + " (" + strings.ToUpper(b.Locale) + ")"
}

// Text 生成纯文本正文，空字段显示为 "-".
func Text(b types.ContactBrief) string {
	lines := []string{
		"New contact brief",
		"",
		"Locale: " + b.Locale,
		"Name: " + b.Name,
		"Company: " + dash(b.Company),
		"Email: " + b.Email,
		"",
		"Project",
		"Type: " + dash(b.Type),
		"People: " + dash(b.People),
		"Location: " + dash(b.Location),
		"Date: " + dash(b.Date),
		"",
		"Deliverables",
		"Formats: " + dash(b.Formats),
		"Timeline: " + dash(b.Timeline),
		"",
		"Corporate",
		"Invoice: " + dash(b.Invoice),
		"NDA: " + dash(b.NDA),
		"",
		"Notes",
		dash(b.Notes),
	}

	return strings.Join(lines, "\n")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
