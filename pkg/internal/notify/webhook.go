package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/folio/pkg/internal/types"
)

// Webhook 以 JSON POST 投递 {source, submittedAt, payload, text}.
type Webhook struct {
	url    string
	source string
	http   *http.Client
	now    func() time.Time
}

// NewWebhook 创建 webhook 投递.
func NewWebhook(url, source string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:    url,
		source: source,
		http:   &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// Name 实现 Transport.
func (w *Webhook) Name() string { return "webhook" }

// Send 实现 Transport，非 2xx 视为失败.
func (w *Webhook) Send(ctx context.Context, brief types.ContactBrief) error {
	body, err := sonic.Marshal(types.ContactEnvelope{
		Source:      w.source,
		SubmittedAt: w.now().UTC(),
		Payload:     brief,
		Text:        Text(brief),
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
