// Package bot assembles the conversation flows on top of the flow engine and
// binds them to the Telegram transport.
package bot

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/config"
	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/logger"
	"github.com/ulugdev/yordamchi/internal/providers"
	"github.com/ulugdev/yordamchi/internal/storage"
	"github.com/ulugdev/yordamchi/internal/telegram"
)

const (
	welcomeText = "👋 Assalomu alaykum! Foydali va qiziqarli yordamchi botimizga xush kelibsiz.\n" +
		"📋 Ushbu bot yordamida ob-havo, namoz vaqtlari, valyuta kurslari, tasodifiy son generatori va Vikipediya xizmatlaridan foydalanishingiz mumkin.\n" +
		"🔽 Quyidagi tugmalardan birini tanlang!"
	blockedText  = "🚫 Siz botdan foydalana olmaysiz, chunki bloklangansiz!"
	notAdminText = "❌ Sizda admin huquqlari yo‘q!"

	// anonymousName substitutes for senders without a public username.
	anonymousName = "Noma'lum"
)

// Sender delivers outbound messages. Satisfied by telegram.Sender.
type Sender interface {
	Send(ctx context.Context, recipient int64, text string, markup *tele.ReplyMarkup) error
}

// Options carries the dependencies of the assembled application.
type Options struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Users   storage.UserDirectory
	Rates   *providers.RateService
	Weather *providers.WeatherClient
	Prayer  *providers.PrayerClient
	Wiki    *providers.WikiClient
	Sender  Sender
	// Sessions overrides the default in-memory session store.
	Sessions flow.SessionStore
}

// App is the wired bot: flow engine, providers, and storage behind the
// Telegram handlers.
type App struct {
	cfg     *config.Config
	cat     *catalog.Catalog
	users   storage.UserDirectory
	rates   *providers.RateService
	weather *providers.WeatherClient
	prayer  *providers.PrayerClient
	wiki    *providers.WikiClient
	sender  Sender
	engine  *flow.Engine

	randInt func(start, end int) int
	now     func() time.Time
}

// New wires the application and registers every conversation flow.
func New(opts Options) *App {
	a := &App{
		cfg:     opts.Config,
		cat:     opts.Catalog,
		users:   opts.Users,
		rates:   opts.Rates,
		weather: opts.Weather,
		prayer:  opts.Prayer,
		wiki:    opts.Wiki,
		sender:  opts.Sender,
		randInt: func(start, end int) int { return start + rand.Intn(end-start+1) },
		now:     time.Now,
	}
	a.engine = flow.NewEngine(flow.Options{
		Sessions: opts.Sessions,
		Send:     a.deliver,
		RootMenu: a.rootMenu,
	})

	a.registerWeatherFlow()
	a.registerPrayerFlow()
	a.registerCurrencyFlow()
	a.registerRandomFlow()
	a.registerWikiFlow()
	a.registerFeedbackFlow()
	a.registerAdminFlow()

	a.engine.Entry(catalog.MainWeatherLabel, stepWeatherInput)
	a.engine.Entry(catalog.MainPrayerLabel, stepPrayerInput)
	a.engine.Entry(catalog.MainCurrencyLabel, stepCurrencyMenu)
	a.engine.Entry(catalog.MainRandomLabel, stepRandomInput)
	a.engine.Entry(catalog.MainWikiLabel, stepWikiInput)
	a.engine.Entry(catalog.MainFeedbackLabel, stepFeedbackInput)

	return a
}

// RegisterHandlers attaches the bot's command and message handlers.
func (a *App) RegisterHandlers(b *tele.Bot) {
	b.Use(telegram.Recover, telegram.Logger)
	b.Handle("/start", a.handleStart)
	b.Handle("/admin", a.handleAdminCommand)
	b.Handle(tele.OnText, a.handleText)
	b.Handle(tele.OnLocation, a.handleLocation)
}

func (a *App) deliver(ctx context.Context, recipient int64, reply flow.Reply) error {
	return a.sender.Send(ctx, recipient, reply.Text, telegram.Markup(reply.Keyboard))
}

func (a *App) rootMenu(userID int64) catalog.Keyboard {
	return a.cat.MainMenu(a.cfg.IsAdmin(userID))
}

func (a *App) handleStart(c tele.Context) error {
	ev, ok := eventFrom(c)
	if !ok {
		return nil
	}
	return a.startEvent(requestContext(c), ev)
}

// startEvent registers the sender and drops any pending conversation. Banned
// senders get the block notice and are never upserted.
func (a *App) startEvent(ctx context.Context, ev flow.Event) error {
	banned, err := a.users.BannedIDs(ctx)
	if err != nil {
		logger.TG.Error("banned list lookup failed",
			slog.String("event", "start"),
			slog.Int64("user_id", ev.Sender),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
		return a.deliver(ctx, ev.Sender, flow.Reply{Text: providers.UserText(err), Keyboard: a.rootMenu(ev.Sender)})
	}
	if _, isBanned := banned[ev.Sender]; isBanned {
		return a.sender.Send(ctx, ev.Sender, blockedText, nil)
	}

	username := ev.Username
	if username == "" {
		username = anonymousName
	}
	if err := a.users.UpsertUser(ctx, ev.Sender, username); err != nil {
		logger.TG.Warn("user registration failed",
			slog.String("event", "start"),
			slog.Int64("user_id", ev.Sender),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
	}
	a.engine.Reset(ev.Sender)
	return a.deliver(ctx, ev.Sender, flow.Reply{Text: welcomeText, Keyboard: a.rootMenu(ev.Sender)})
}

func (a *App) handleAdminCommand(c tele.Context) error {
	ev, ok := eventFrom(c)
	if !ok {
		return nil
	}
	return a.enterAdminPanel(requestContext(c), ev)
}

func (a *App) handleText(c tele.Context) error {
	ev, ok := eventFrom(c)
	if !ok {
		return nil
	}
	ctx := requestContext(c)

	consumed, err := a.engine.HandleEvent(ctx, ev)
	if err != nil {
		logger.TG.Error("event delivery failed",
			slog.String("event", "handle.text"),
			slog.Int64("user_id", ev.Sender),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
		return nil
	}
	if consumed {
		return nil
	}
	if ev.Text == catalog.MainAdminLabel {
		return a.enterAdminPanel(ctx, ev)
	}
	logger.TG.Debug("unhandled text",
		slog.String("event", "handle.text"),
		slog.Int64("user_id", ev.Sender),
		slog.String("payload", logger.SanitizeLimit(ev.Text, 64)),
		logger.RID(ctx),
	)
	return nil
}

func (a *App) handleLocation(c tele.Context) error {
	ev, ok := eventFrom(c)
	if !ok || ev.Location == nil {
		return nil
	}
	ctx := requestContext(c)

	if _, err := a.engine.HandleEvent(ctx, ev); err != nil {
		logger.TG.Error("event delivery failed",
			slog.String("event", "handle.location"),
			slog.Int64("user_id", ev.Sender),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
	}
	return nil
}

func (a *App) enterAdminPanel(ctx context.Context, ev flow.Event) error {
	if !a.cfg.IsAdmin(ev.Sender) {
		return a.deliver(ctx, ev.Sender, flow.Reply{Text: notAdminText, Keyboard: a.rootMenu(ev.Sender)})
	}
	return a.engine.EnterStep(ctx, ev, stepAdminMenu)
}

// eventFrom normalizes a telebot update into a flow event.
func eventFrom(c tele.Context) (flow.Event, bool) {
	sender := c.Sender()
	if sender == nil {
		return flow.Event{}, false
	}
	ev := flow.Event{
		Sender:   sender.ID,
		Username: sender.Username,
		Text:     strings.TrimSpace(c.Text()),
	}
	if msg := c.Message(); msg != nil && msg.Location != nil {
		ev.Location = &flow.Location{
			Lat: float64(msg.Location.Lat),
			Lon: float64(msg.Location.Lng),
		}
	}
	return ev, true
}

// requestContext carries the middleware-assigned rid into provider calls.
func requestContext(c tele.Context) context.Context {
	ctx := context.Background()
	if rid, ok := c.Get("rid").(string); ok && rid != "" {
		ctx = logger.WithRID(ctx, rid)
	}
	return ctx
}
