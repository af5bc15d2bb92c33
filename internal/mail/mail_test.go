package mail

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"brytashop-be/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPMailer_Send(t *testing.T) {
	msg := Message{To: "jane@example.com", Subject: "Your Password Reset Token", HTML: "<p>hi</p>"}

	t.Run("Success", func(t *testing.T) {
		d := &fakeDialer{}
		m := &smtpMailer{dialer: d, from: "hello@brytashop.com"}

		require.NoError(t, m.Send(context.Background(), msg))
		require.Len(t, d.sent, 1)
		assert.Equal(t, []string{"hello@brytashop.com"}, d.sent[0].GetHeader("From"))
		assert.Equal(t, []string{"jane@example.com"}, d.sent[0].GetHeader("To"))
		assert.Equal(t, []string{"Your Password Reset Token"}, d.sent[0].GetHeader("Subject"))
	})

	t.Run("TransportError", func(t *testing.T) {
		d := &fakeDialer{err: errors.New("connection refused")}
		m := &smtpMailer{dialer: d, from: "hello@brytashop.com"}

		err := m.Send(context.Background(), msg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("CanceledContext", func(t *testing.T) {
		d := &fakeDialer{}
		m := &smtpMailer{dialer: d, from: "hello@brytashop.com"}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, m.Send(ctx, msg), context.Canceled)
		assert.Empty(t, d.sent)
	})
}

func TestNewSMTPMailer_NoHost(t *testing.T) {
	t.Run("DevelopmentLogsEnvelopeOnly", func(t *testing.T) {
		core, observed := observer.New(zapcore.InfoLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		m := NewSMTPMailer("", 587, "", "", "hello@brytashop.com", false)
		_, ok := m.(*logMailer)
		require.True(t, ok)

		html := MakeANiceEmail(`<a href="http://shop.test/reset?resetToken=s3cr3t-token">Click</a>`)
		require.NoError(t, m.Send(context.Background(), Message{To: "a@b.c", Subject: "Your Password Reset Token", HTML: html}))

		entries := observed.FilterMessage("email (not sent, no transport configured)").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "a@b.c", fields["to"])
		assert.EqualValues(t, len(html), fields["html_bytes"])
		for _, e := range observed.All() {
			for _, v := range e.ContextMap() {
				assert.NotContains(t, fmt.Sprint(v), "s3cr3t-token")
			}
		}
	})

	t.Run("ProductionRefusesToSend", func(t *testing.T) {
		m := NewSMTPMailer("", 587, "", "", "hello@brytashop.com", true)

		err := m.Send(context.Background(), Message{To: "a@b.c", HTML: "resetToken=abc"})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestMakeANiceEmail(t *testing.T) {
	html := MakeANiceEmail(`<a href="http://shop.test/reset?resetToken=abc">Click</a>`)

	assert.Contains(t, html, "Hello There!")
	assert.Contains(t, html, `href="http://shop.test/reset?resetToken=abc"`)
}
