package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/logger"
)

const stepFeedbackInput flow.StepID = "feedback.input"

const (
	feedbackPromptText = "📝 Iltimos, shikoyat yoki taklifingizni yozing:"
	feedbackAckText    = "✅ Shikoyat yoki taklifingiz qabul qilindi! Tez orada ko‘rib chiqamiz."
)

func (a *App) registerFeedbackFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepFeedbackInput,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: feedbackPromptText}
		},
		Handle: a.handleFeedbackInput,
	})
}

// handleFeedbackInput relays the message to every administrator. A failed
// delivery to one admin never blocks the others or the acknowledgement.
func (a *App) handleFeedbackInput(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Outcome, error) {
	username := s.Username
	if username == "" {
		username = anonymousName
	}
	note := fmt.Sprintf("📝 Yangi shikoyat/taklif:\nFoydalanuvchi: %s (ID: %d)\nXabar: %s",
		username, s.UserID, strings.TrimSpace(ev.Text))

	for _, adminID := range a.cfg.Telegram.Admins {
		if err := a.sender.Send(ctx, adminID, note, nil); err != nil {
			logger.TG.Warn("feedback relay failed",
				slog.String("event", "feedback.relay"),
				slog.Int64("admin_id", adminID),
				slog.String("err", err.Error()),
				logger.RID(ctx),
			)
		}
	}
	return flow.Terminal(feedbackAckText), nil
}
