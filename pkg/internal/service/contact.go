package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid"
	"github.com/rs/zerolog"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/i18n"
	"github.com/yeisme/folio/pkg/internal/notify"
	"github.com/yeisme/folio/pkg/internal/types"
	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/queue"
)

// ContactService 处理联系表单：清洗、反垃圾、按顺序尝试投递.
type ContactService struct {
	transports []notify.Transport
	events     queue.Publisher
	logger     *zerolog.Logger
	now        func() time.Time
}

// NewContactService 从 context 获取依赖实例.
func NewContactService(c context.Context) *ContactService {
	d := DepsFromContext(c)
	return NewContactServiceWith(d.Events, Transports(d.config().Contact)...)
}

// NewContactServiceWith 使用显式投递方式创建服务，按参数顺序尝试.
func NewContactServiceWith(events queue.Publisher, transports ...notify.Transport) *ContactService {
	return &ContactService{
		transports: transports,
		events:     events,
		logger:     nlog.With("contact"),
		now:        time.Now,
	}
}

// Transports 按配置组装投递方式，邮件优先.
func Transports(cfg configs.ContactConfig) []notify.Transport {
	var out []notify.Transport

	if cfg.EmailEnabled() {
		out = append(out, notify.NewSMTP(cfg))
	}

	if cfg.WebhookEnabled() {
		out = append(out, notify.NewWebhook(cfg.WebhookURL, cfg.Source, cfg.Timeout))
	}

	return out
}

// Normalize 去掉首尾空白并收窄 locale.
func Normalize(b types.ContactBrief) types.ContactBrief {
	fields := []*string{
		&b.Locale, &b.Name, &b.Company, &b.Email, &b.Type, &b.People, &b.Location,
		&b.Date, &b.Formats, &b.Timeline, &b.Invoice, &b.NDA, &b.Notes, &b.Website,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	b.Locale = string(i18n.Pick(b.Locale))

	return b
}

// Submit 投递一份联系表单. 蜜罐字段非空时假装成功且不投递.
func (s *ContactService) Submit(ctx context.Context, raw types.ContactBrief) (types.ContactResult, error) {
	brief := Normalize(raw)
	res := types.ContactResult{Reference: s.reference()}

	l := s.logger.With().Str("reference", res.Reference).Str("locale", brief.Locale).Logger()

	if brief.Website != "" {
		res.Spam = true

		l.Info().Msg("honeypot filled, brief dropped")
		metrics.ContactBriefs.WithLabelValues("spam", "").Inc()
		s.publish(ctx, res, brief.Locale, false)

		return res, nil
	}

	if brief.Name == "" || brief.Email == "" {
		metrics.ContactBriefs.WithLabelValues("invalid", "").Inc()
		return res, ErrInvalidBrief
	}

	if len(s.transports) == 0 {
		l.Error().Msg("contact form: no delivery transport configured")
		metrics.ContactBriefs.WithLabelValues("unconfigured", "").Inc()

		return res, ErrNoTransport
	}

	var errs []error

	for _, t := range s.transports {
		if err := t.Send(ctx, brief); err != nil {
			l.Warn().Err(err).Str("transport", t.Name()).Msg("brief delivery attempt failed")
			errs = append(errs, err)

			continue
		}

		res.Transport = t.Name()

		l.Info().Str("transport", t.Name()).Msg("brief delivered")
		metrics.ContactBriefs.WithLabelValues("sent", t.Name()).Inc()
		s.publish(ctx, res, brief.Locale, true)

		return res, nil
	}

	metrics.ContactBriefs.WithLabelValues("failed", "").Inc()
	s.publish(ctx, res, brief.Locale, false)

	return res, errors.Join(append([]error{ErrDeliveryFailed}, errs...)...)
}

func (s *ContactService) reference() string {
	id, err := ulid.New(ulid.Timestamp(s.now()), rand.Reader)
	if err != nil {
		return ""
	}

	return id.String()
}

func (s *ContactService) publish(ctx context.Context, res types.ContactResult, locale string, delivered bool) {
	if s.events == nil {
		return
	}

	err := queue.PublishContactReceived(ctx, s.events, queue.ContactReceivedPayload{
		Reference: res.Reference,
		Locale:    locale,
		Transport: res.Transport,
		Delivered: delivered,
		Spam:      res.Spam,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("publish contact.received failed")
	}
}
