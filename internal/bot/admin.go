package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/logger"
)

const (
	stepAdminMenu      flow.StepID = "admin.menu"
	stepAdminBroadcast flow.StepID = "admin.broadcast"
	stepAdminBan       flow.StepID = "admin.ban"
	stepAdminUnban     flow.StepID = "admin.unban"
)

const (
	adminWelcomeText   = "👨‍💼 Admin paneliga xush kelibsiz! Quyidagi opsiyalardan birini tanlang:"
	adminBackText      = "👨‍💼 Admin paneliga qaytdik!"
	broadcastAskText   = "📢 Barchaga yuboriladigan xabarni kiriting:"
	broadcastDoneText  = "✅ Xabar barcha foydalanuvchilarga yuborildi!"
	banAskText         = "🚫 Bloklash uchun foydalanuvchi ID’sini kiriting:"
	unbanAskText       = "✅ Blokdan chiqarish uchun foydalanuvchi ID’sini kiriting:"
	badUserIDText      = "❌ Iltimos, to‘g‘ri foydalanuvchi ID’sini kiriting (raqam bo‘lishi kerak)!"
	userListEmptyText  = "👥 Foydalanuvchilar ro‘yxati bo‘sh!"
	userListHeaderText = "👥 Foydalanuvchilar ro‘yxati:\n"
)

func (a *App) registerAdminFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepAdminMenu,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: adminWelcomeText, Keyboard: a.cat.AdminMenu()}
		},
		BackReply: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: adminBackText, Keyboard: a.cat.AdminMenu()}
		},
		Handle: a.handleAdminMenu,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepAdminBroadcast,
		Parent: stepAdminMenu,
		Handle: a.handleAdminBroadcast,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepAdminBan,
		Parent: stepAdminMenu,
		Handle: a.adminSetBanHandler(true),
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepAdminUnban,
		Parent: stepAdminMenu,
		Handle: a.adminSetBanHandler(false),
	})
}

func (a *App) adminMenuPrompt(text string) flow.Reply {
	return flow.Reply{Text: text, Keyboard: a.cat.AdminMenu()}
}

func (a *App) handleAdminMenu(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	switch ev.Text {
	case catalog.AdminBroadcastLabel:
		return flow.Prompt(flow.Reply{Text: broadcastAskText}, stepAdminBroadcast, nil), nil
	case catalog.AdminBanLabel:
		return flow.Prompt(flow.Reply{Text: banAskText}, stepAdminBan, nil), nil
	case catalog.AdminUnbanLabel:
		return flow.Prompt(flow.Reply{Text: unbanAskText}, stepAdminUnban, nil), nil
	case catalog.AdminListLabel:
		users, err := a.users.ListUsers(ctx)
		if err != nil {
			return flow.Outcome{}, err
		}
		if len(users) == 0 {
			return flow.Retry(a.adminMenuPrompt(userListEmptyText)), nil
		}
		lines := make([]string, 0, len(users))
		for _, u := range users {
			name := u.Username
			if name == "" {
				name = anonymousName
			}
			lines = append(lines, fmt.Sprintf("ID: %d, Username: %s, Banned: %t", u.ID, name, u.Banned))
		}
		return flow.Retry(a.adminMenuPrompt(userListHeaderText + strings.Join(lines, "\n"))), nil
	default:
		return flow.Retry(a.adminMenuPrompt(adminWelcomeText)), nil
	}
}

// handleAdminBroadcast sends the message to every non-banned user. Individual
// delivery failures are logged and skipped.
func (a *App) handleAdminBroadcast(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return flow.Outcome{}, err
	}

	note := "📢 Admin xabari:\n" + strings.TrimSpace(ev.Text)
	for _, u := range users {
		if u.Banned {
			continue
		}
		if err := a.sender.Send(ctx, u.ID, note, nil); err != nil {
			logger.TG.Warn("broadcast delivery failed",
				slog.String("event", "admin.broadcast"),
				slog.Int64("user_id", u.ID),
				slog.String("err", err.Error()),
				logger.RID(ctx),
			)
		}
	}
	return flow.Prompt(a.adminMenuPrompt(broadcastDoneText), stepAdminMenu, nil), nil
}

func (a *App) adminSetBanHandler(banned bool) func(context.Context, *flow.Session, flow.Event) (flow.Outcome, error) {
	return func(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
		id, err := strconv.ParseInt(strings.TrimSpace(ev.Text), 10, 64)
		if err != nil {
			return flow.Retry(flow.Reply{Text: badUserIDText}), nil
		}
		if err := a.users.SetBanned(ctx, id, banned); err != nil {
			return flow.Outcome{}, err
		}

		logger.TG.Info("ban flag updated",
			slog.String("event", "admin.ban"),
			slog.Int64("target_id", id),
			slog.Bool("banned", banned),
			logger.RID(ctx),
		)
		text := fmt.Sprintf("✅ Foydalanuvchi %d blokdan chiqarildi!", id)
		if banned {
			text = fmt.Sprintf("🚫 Foydalanuvchi %d bloklandi!", id)
		}
		return flow.Prompt(a.adminMenuPrompt(text), stepAdminMenu, nil), nil
	}
}
