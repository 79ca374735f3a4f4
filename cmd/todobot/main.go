package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"todo-bot/internal/bot"
	"todo-bot/internal/config"
	"todo-bot/internal/logger"
	"todo-bot/internal/repository"
	"todo-bot/internal/server"
	"todo-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.LogDevelopment); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("bot api: %v", err)
	}
	logger.Info("bot authorized", zap.String("account", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(strings.TrimRight(cfg.WebhookURL, "/") + "/webhook")
	if err != nil {
		log.Fatalf("webhook config: %v", err)
	}
	if _, err := api.Request(wh); err != nil {
		log.Fatalf("set webhook: %v", err)
	}
	logger.Info("webhook registered", zap.String("url", cfg.WebhookURL))

	todoBot := bot.New(bot.NewAPISender(api), userRepo, taskSvc)

	srv := server.New(cfg.ListenAddr, todoBot)
	logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("shutdown complete")
}
