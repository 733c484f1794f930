package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultContactSource  = "evagorobets.com"
	DefaultContactTimeout = 10 * time.Second
	DefaultSMTPPort       = 587

	SMTPTLSMandatory     = "mandatory"
	SMTPTLSOpportunistic = "opportunistic"
	SMTPTLSNone          = "none"
)

// ContactConfig 联系表单投递配置，邮件优先，webhook 其次.
type ContactConfig struct {
	To         string        `mapstructure:"to"          rule:"omitempty,email"`
	From       string        `mapstructure:"from"`
	WebhookURL string        `mapstructure:"webhook_url" rule:"omitempty,url"`
	Source     string        `mapstructure:"source"`
	Timeout    time.Duration `mapstructure:"timeout"     rule:"gt=0"`
	SMTP       SMTPConfig    `mapstructure:"smtp"`
}

// SMTPConfig 邮件发送配置.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"     rule:"min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// TLSMode mandatory | opportunistic | none
	TLSMode string `mapstructure:"tls_mode" rule:"oneof=mandatory opportunistic none"`
}

// EmailEnabled 邮件通道是否可用.
func (c *ContactConfig) EmailEnabled() bool {
	return c.SMTP.Host != "" && c.To != "" && c.From != ""
}

// WebhookEnabled webhook 通道是否可用.
func (c *ContactConfig) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

func (c *ContactConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("contact.to", "")
	v.SetDefault("contact.from", "")
	v.SetDefault("contact.webhook_url", "")
	v.SetDefault("contact.source", DefaultContactSource)
	v.SetDefault("contact.timeout", DefaultContactTimeout)
	v.SetDefault("contact.smtp.host", "")
	v.SetDefault("contact.smtp.port", DefaultSMTPPort)
	v.SetDefault("contact.smtp.username", "")
	v.SetDefault("contact.smtp.password", "")
	v.SetDefault("contact.smtp.tls_mode", SMTPTLSMandatory)
}
