package bot

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Состояния диалога
const (
	stateAwaitingPlan        = "awaiting_plan"
	stateAwaitingConstraints = "awaiting_constraints"
)

// userStates хранит состояние диалога по чату
var userStates = struct {
	sync.RWMutex
	states map[int64]string
}{states: make(map[int64]string)}

// Bot представляет Telegram бота
type Bot struct {
	api        *tgbotapi.BotAPI
	checker    *PlanChecker
	httpClient *http.Client
}

// New создаёт новый экземпляр бота
func New(api *tgbotapi.BotAPI, checker *PlanChecker) *Bot {
	return &Bot{
		api:        api,
		checker:    checker,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Start запускает бота и обрабатывает обновления до отмены ctx
func (b *Bot) Start(ctx context.Context) error {
	updates, err := b.initUpdatesChannel()
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	log.Printf("🤖 Бот @%s запущен", b.api.Self.UserName)
	b.handleUpdates(ctx, updates)
	return nil
}

// Notify отправляет сообщение пользователю; userID это ID чата
func (b *Bot) Notify(userID string, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректный ID пользователя %q: %w", userID, err)
	}
	return b.sendMessage(chatID, text)
}

func (b *Bot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		if update.Message.IsCommand() {
			b.handleCommand(ctx, update.Message)
			continue
		}

		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) initUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	return b.api.GetUpdatesChan(u), nil
}

func userIDOf(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
