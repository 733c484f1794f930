package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/types"
	"github.com/yeisme/folio/pkg/queue"
)

type fakeTransport struct {
	name  string
	err   error
	sent  []types.ContactBrief
	calls int
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(_ context.Context, b types.ContactBrief) error {
	f.calls++
	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, b)

	return nil
}

func validBrief() types.ContactBrief {
	return types.ContactBrief{Locale: " ru ", Name: "  Anna ", Email: "anna@example.com ", Notes: "headshots"}
}

func TestSubmitFirstTransportWins(t *testing.T) {
	ev := &recordingEvents{}
	mail := &fakeTransport{name: "smtp"}
	hook := &fakeTransport{name: "webhook"}

	s := NewContactServiceWith(ev, mail, hook)
	s.now = func() time.Time { return t0 }

	res, err := s.Submit(t.Context(), validBrief())
	require.NoError(t, err)

	assert.Equal(t, "smtp", res.Transport)
	assert.Len(t, res.Reference, 26)
	assert.False(t, res.Spam)
	assert.Zero(t, hook.calls)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "Anna", mail.sent[0].Name)
	assert.Equal(t, "ru", mail.sent[0].Locale)
	assert.Equal(t, "anna@example.com", mail.sent[0].Email)

	assert.Equal(t, []string{queue.TopicContactReceived}, ev.topics)
}

func TestSubmitFallsBackToWebhook(t *testing.T) {
	mail := &fakeTransport{name: "smtp", err: errors.New("dial tcp: refused")}
	hook := &fakeTransport{name: "webhook"}

	s := NewContactServiceWith(nil, mail, hook)

	res, err := s.Submit(t.Context(), validBrief())
	require.NoError(t, err)
	assert.Equal(t, "webhook", res.Transport)
	assert.Equal(t, 1, mail.calls)
	assert.Equal(t, 1, hook.calls)
}

func TestSubmitAllTransportsFail(t *testing.T) {
	boom := errors.New("boom")
	s := NewContactServiceWith(nil,
		&fakeTransport{name: "smtp", err: boom},
		&fakeTransport{name: "webhook", err: errors.New("status 502")},
	)

	res, err := s.Submit(t.Context(), validBrief())
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.ErrorIs(t, err, boom)
	assert.NotEmpty(t, res.Reference)
	assert.Empty(t, res.Transport)
}

func TestSubmitHoneypot(t *testing.T) {
	ev := &recordingEvents{}
	mail := &fakeTransport{name: "smtp"}

	s := NewContactServiceWith(ev, mail)

	b := validBrief()
	b.Website = "http://spam.example"

	res, err := s.Submit(t.Context(), b)
	require.NoError(t, err)
	assert.True(t, res.Spam)
	assert.Zero(t, mail.calls)
	assert.Equal(t, 1, ev.count())
}

func TestSubmitInvalidAndUnconfigured(t *testing.T) {
	mail := &fakeTransport{name: "smtp"}
	s := NewContactServiceWith(nil, mail)

	_, err := s.Submit(t.Context(), types.ContactBrief{Name: "  ", Email: "a@example.com"})
	require.ErrorIs(t, err, ErrInvalidBrief)

	_, err = s.Submit(t.Context(), types.ContactBrief{Name: "Anna"})
	require.ErrorIs(t, err, ErrInvalidBrief)
	assert.Zero(t, mail.calls)

	_, err = NewContactServiceWith(nil).Submit(t.Context(), validBrief())
	require.ErrorIs(t, err, ErrNoTransport)
}

func TestNormalizeUnknownLocale(t *testing.T) {
	b := Normalize(types.ContactBrief{Locale: "de", Notes: " hi \n"})
	assert.Equal(t, "en", b.Locale)
	assert.Equal(t, "hi", b.Notes)
}

func TestTransportsOrder(t *testing.T) {
	cfg := configs.Defaults().Contact
	assert.Empty(t, Transports(cfg))

	cfg.WebhookURL = "https://hooks.example.com/brief"
	cfg.To = "studio@example.com"
	cfg.From = "site@example.com"
	cfg.SMTP.Host = "smtp.example.com"

	ts := Transports(cfg)
	require.Len(t, ts, 2)
	assert.Equal(t, "email", ts[0].Name())
	assert.Equal(t, "webhook", ts[1].Name())
}
