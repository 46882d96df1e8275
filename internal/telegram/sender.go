package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/ulugdev/yordamchi/internal/logger"
)

const (
	defaultSendRetries = 2
	defaultSendBackoff = 2 * time.Second
)

// Sender delivers outbound messages with bounded retries on transient
// network failures. One recipient's failure never affects another's delivery.
type Sender struct {
	bot        *tele.Bot
	maxRetries int
	backoff    time.Duration
}

// NewSender wraps a bot with the default retry policy.
func NewSender(bot *tele.Bot) *Sender {
	return &Sender{
		bot:        bot,
		maxRetries: defaultSendRetries,
		backoff:    defaultSendBackoff,
	}
}

// Send delivers text with an optional reply markup to the given recipient.
func (s *Sender) Send(ctx context.Context, recipient int64, text string, markup *tele.ReplyMarkup) error {
	to := &tele.User{ID: recipient}
	var lastErr error
	attempts := s.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if markup != nil {
			_, err = s.bot.Send(to, text, markup)
		} else {
			_, err = s.bot.Send(to, text)
		}
		if err == nil {
			if attempt > 1 {
				logger.TG.Info("send retry succeeded",
					slog.String("event", "send.retry"),
					slog.Int64("recipient", recipient),
					slog.Int("attempt", attempt),
					logger.RID(ctx),
				)
			}
			return nil
		}
		lastErr = err
		if !shouldRetry(err) || attempt == attempts {
			break
		}

		delay := s.backoff * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	logger.TG.Error("send failed",
		slog.String("event", "send.fail"),
		slog.Int64("recipient", recipient),
		slog.String("err", lastErr.Error()),
		logger.RID(ctx),
	)
	return lastErr
}

// shouldRetry reports whether a network error is worth retrying. It focuses
// on transient dial/timeout failures produced by net/http.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() || opErr.Op == "dial" {
			return true
		}
		if nested, ok := opErr.Err.(net.Error); ok && nested.Timeout() {
			return true
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
			return shouldRetry(urlErr.Err)
		}
	}

	return false
}
