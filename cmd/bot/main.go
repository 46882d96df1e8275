package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	tele "gopkg.in/telebot.v4"

	"github.com/ulugdev/yordamchi/internal/bot"
	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/config"
	"github.com/ulugdev/yordamchi/internal/database"
	"github.com/ulugdev/yordamchi/internal/logger"
	"github.com/ulugdev/yordamchi/internal/providers"
	"github.com/ulugdev/yordamchi/internal/storage"
	"github.com/ulugdev/yordamchi/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	var dbCfg database.Config
	if err := envconfig.Process("", &dbCfg); err != nil {
		return err
	}
	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(dbCfg); err != nil {
		return err
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: telegram.BuildPoller(cfg),
	})
	if err != nil {
		return err
	}

	cat := catalog.Default()
	app := bot.New(bot.Options{
		Config:  cfg,
		Catalog: cat,
		Users:   storage.NewUserRepo(db),
		Rates: providers.NewRateService(
			providers.NewExchangeClient(cfg.Providers.ExchangeBaseURL),
			storage.NewRateCacheRepo(db),
		),
		Weather: providers.NewWeatherClient(cfg.Providers.WeatherAPIKey, cfg.Providers.WeatherBaseURL),
		Prayer:  providers.NewPrayerClient(cat, cfg.Providers.PrayerBaseURL),
		Wiki:    providers.NewWikiClient(cfg.Providers.WikiBaseURL),
		Sender:  telegram.NewSender(b),
	})
	app.RegisterHandlers(b)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telegram.StartHealthServer(ctx, cfg.Webhook.HealthListen)

	go func() {
		<-ctx.Done()
		logger.L.Info("shutting down...", slog.String("event", "shutdown"))
		b.Stop()
	}()

	logger.L.Info("bot starting",
		slog.String("event", "start"),
		slog.String("run_mode", cfg.Telegram.RunMode),
	)
	b.Start()
	return nil
}
