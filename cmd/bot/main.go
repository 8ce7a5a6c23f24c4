package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"

	"runplan/internal/bot"
	"runplan/internal/config"
	"runplan/internal/inbox"
	"runplan/internal/repository"
	"runplan/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("БД недоступна: %v", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Ошибка миграции: %v", err)
	}
	log.Println("✅ Подключение к БД установлено")

	repo := repository.New(db)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка создания бота: %v", err)
	}

	checker := bot.NewPlanChecker(repo.Plan, repo.Constraints, repo.Validation)
	telegramBot := bot.New(api, checker)

	revalidator := scheduler.NewRevalidator(repo.Plan, repo.Constraints, repo.Validation, telegramBot)
	if err := revalidator.Start(ctx, cfg.RevalidateSchedule); err != nil {
		log.Fatalf("Ошибка запуска планировщика: %v", err)
	}
	defer revalidator.Stop()

	if cfg.InboxDir != "" {
		watcher := inbox.NewWatcher(cfg.InboxDir, inbox.NewProcessor(cfg.ReportsDir, repo.Validation))
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("⚠️ Папка %s не отслеживается: %v", cfg.InboxDir, err)
			}
		}()
	}

	if err := telegramBot.Start(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("👋 Бот остановлен")
}
