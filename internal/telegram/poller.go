// Package telegram adapts the bot's transport: poller construction, keyboard
// rendering, middleware, and the retrying outbound sender.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/ulugdev/yordamchi/internal/config"
	"github.com/ulugdev/yordamchi/internal/logger"
)

// BuildPoller returns a telebot poller based on the configured run mode.
func BuildPoller(cfg *config.Config) tele.Poller {
	if strings.EqualFold(cfg.Telegram.RunMode, config.RunModeWebhook) {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}

	timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}

// StartHealthServer serves a plain liveness endpoint for platform probes.
// It returns immediately; the server stops when ctx is done.
func StartHealthServer(ctx context.Context, listen string) {
	if strings.TrimSpace(listen) == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is running!"))
	})
	srv := &http.Server{Addr: listen, Handler: mux}

	go func() {
		logger.TG.Info("health server listening",
			slog.String("event", "health.listen"),
			slog.String("listen", listen),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.TG.Error("health server failed",
				slog.String("event", "health.listen"),
				slog.String("err", err.Error()),
			)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
