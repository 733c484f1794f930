package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/types"
)

// SMTP 通过 SMTP 服务器发送纯文本邮件，回复地址为提交者邮箱.
type SMTP struct {
	cfg configs.ContactConfig
}

// NewSMTP 创建邮件投递.
func NewSMTP(cfg configs.ContactConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// Name 实现 Transport.
func (s *SMTP) Name() string { return "email" }

// Send 实现 Transport.
func (s *SMTP) Send(ctx context.Context, brief types.ContactBrief) error {
	msg, err := s.message(brief)
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail (host=%s port=%d): %w", s.cfg.SMTP.Host, s.cfg.SMTP.Port, err)
	}

	return nil
}

func (s *SMTP) message(brief types.ContactBrief) (*mail.Msg, error) {
	m := mail.NewMsg()

	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}

	if err := m.To(s.cfg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}

	if brief.Email != "" {
		if err := m.ReplyTo(brief.Email); err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}

	m.Subject(Subject(brief))
	m.SetBodyString(mail.TypeTextPlain, Text(brief))

	return m, nil
}

func (s *SMTP) client() (*mail.Client, error) {
	smtp := s.cfg.SMTP

	opts := []mail.Option{
		mail.WithPort(smtp.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(tlsPolicy(smtp.TLSMode)),
		mail.WithTLSConfig(&tls.Config{ServerName: smtp.Host, MinVersion: tls.VersionTLS12}),
	}

	if smtp.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.Username),
			mail.WithPassword(smtp.Password),
		)
	}

	c, err := mail.NewClient(smtp.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client (host=%s port=%d): %w", smtp.Host, smtp.Port, err)
	}

	return c, nil
}

func tlsPolicy(mode string) mail.TLSPolicy {
	switch mode {
	case configs.SMTPTLSNone:
		return mail.NoTLS
	case configs.SMTPTLSOpportunistic:
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}
