package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"runplan/internal/excel"
	"runplan/internal/models"
	"runplan/internal/repository"
	"runplan/internal/validation"
)

// Кнопки главного меню
const (
	btnCheckPlan   = "📋 Проверить план"
	btnConstraints = "⚙️ Ограничения"
	btnLastCheck   = "📊 Последняя проверка"
	btnCancel      = "Отмена"
)

const helpText = `Я проверяю тренировочный план на соответствие вашим ограничениям.

1. Задайте ограничения: /constraints {"sessionsPerWeek": 4, "availableDays": ["monday", "wednesday", "friday", "saturday"], "blockedDays": ["sunday"], "trainingType": "running_only", "currentWeeklyKm": 30}
2. Пришлите план JSON-файлом или командой /validate {"weeks": [...]}
3. /last покажет результат последней проверки`

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "start", "help":
		clearState(chatID)
		b.sendMessageWithKeyboard(chatID, helpText, mainMenuKeyboard())
	case "constraints":
		if strings.TrimSpace(args) == "" {
			b.handleShowConstraints(ctx, chatID)
			return
		}
		b.handleSetConstraints(ctx, chatID, args)
	case "validate":
		if strings.TrimSpace(args) == "" {
			setState(chatID, stateAwaitingPlan)
			b.sendMessageWithKeyboard(chatID, "Пришлите план JSON-файлом или текстом", cancelKeyboard())
			return
		}
		b.handlePlan(ctx, chatID, []byte(extractJSON(args)))
	case "last":
		b.handleLastCheck(ctx, chatID)
	default:
		b.sendMessage(chatID, "Неизвестная команда. /help")
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if message.Document != nil {
		data, err := b.downloadDocument(message.Document)
		if err != nil {
			b.sendError(chatID, "❌ Не удалось получить файл", err)
			return
		}
		if getState(chatID) == stateAwaitingConstraints {
			clearState(chatID)
			b.handleSetConstraints(ctx, chatID, string(data))
			return
		}
		clearState(chatID)
		b.handlePlan(ctx, chatID, data)
		return
	}

	switch message.Text {
	case btnCheckPlan:
		setState(chatID, stateAwaitingPlan)
		b.sendMessageWithKeyboard(chatID, "Пришлите план JSON-файлом или текстом", cancelKeyboard())
		return
	case btnConstraints:
		b.handleShowConstraints(ctx, chatID)
		setState(chatID, stateAwaitingConstraints)
		b.sendMessageWithKeyboard(chatID, "Пришлите новые ограничения в JSON или нажмите «Отмена»", cancelKeyboard())
		return
	case btnLastCheck:
		b.handleLastCheck(ctx, chatID)
		return
	case btnCancel:
		clearState(chatID)
		b.sendMessageWithKeyboard(chatID, "Отменено", mainMenuKeyboard())
		return
	}

	switch getState(chatID) {
	case stateAwaitingConstraints:
		clearState(chatID)
		b.handleSetConstraints(ctx, chatID, message.Text)
	case stateAwaitingPlan:
		clearState(chatID)
		b.handlePlan(ctx, chatID, []byte(extractJSON(message.Text)))
	default:
		if looksLikeJSON(message.Text) {
			b.handlePlan(ctx, chatID, []byte(extractJSON(message.Text)))
			return
		}
		b.sendMessageWithKeyboard(chatID, "Выберите действие в меню или /help", mainMenuKeyboard())
	}
}

func (b *Bot) handleSetConstraints(ctx context.Context, chatID int64, text string) {
	c, err := b.checker.SetConstraints(ctx, userIDOf(chatID), []byte(extractJSON(text)))
	if errors.Is(err, models.ErrInvalidConstraints) {
		b.sendMessageWithKeyboard(chatID, "❌ Некорректные ограничения: "+err.Error(), mainMenuKeyboard())
		return
	}
	if err != nil {
		b.sendError(chatID, "❌ Не удалось сохранить ограничения", err)
		return
	}
	b.sendMessageWithKeyboard(chatID, "✅ Ограничения сохранены\n\n"+formatConstraints(c), mainMenuKeyboard())
}

func (b *Bot) handleShowConstraints(ctx context.Context, chatID int64) {
	c, err := b.checker.Constraints(ctx, userIDOf(chatID))
	if errors.Is(err, ErrNoConstraints) {
		b.sendMessage(chatID, "Ограничения ещё не заданы. /help")
		return
	}
	if err != nil {
		b.sendError(chatID, "❌ Не удалось загрузить ограничения", err)
		return
	}
	b.sendMessage(chatID, formatConstraints(c))
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64, raw []byte) {
	check, err := b.checker.CheckPlan(ctx, userIDOf(chatID), raw)
	if errors.Is(err, ErrNoConstraints) {
		b.sendMessageWithKeyboard(chatID, "Сначала задайте ограничения: /constraints {...}", mainMenuKeyboard())
		return
	}
	if err != nil {
		b.sendError(chatID, "❌ Ошибка проверки плана", err)
		return
	}

	b.sendMessage(chatID, validation.FormatResult(check.Result))
	if hints := validation.RetryHints(check.Result); hints != "" {
		b.sendMessage(chatID, "Подсказка для перегенерации:\n\n"+hints)
	}
	b.sendReport(chatID, check)
}

func (b *Bot) sendReport(chatID int64, check *Check) {
	f, err := excel.ExportReport(check.Plan, check.Constraints, check.Result)
	if err != nil {
		b.sendError(chatID, "❌ Не удалось сформировать отчёт", err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.sendError(chatID, "❌ Не удалось сформировать отчёт", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("plan_check_%s.xlsx", check.ID.String()[:8]),
		Bytes: buf.Bytes(),
	})
	doc.Caption = "Отчёт о проверке"
	if _, err := b.api.Send(doc); err != nil {
		b.sendError(chatID, "❌ Не удалось отправить отчёт", err)
	}
}

func (b *Bot) handleLastCheck(ctx context.Context, chatID int64) {
	rec, err := b.checker.Latest(ctx, userIDOf(chatID))
	if errors.Is(err, repository.ErrNotFound) {
		b.sendMessage(chatID, "Проверок ещё не было")
		return
	}
	if err != nil {
		b.sendError(chatID, "❌ Не удалось загрузить проверку", err)
		return
	}
	text := fmt.Sprintf("🗓 %s\n\n%s", rec.CreatedAt.Format("02.01.2006 15:04"), validation.FormatResult(rec.Result))
	b.sendMessage(chatID, text)
}

// formatConstraints показывает ограничения в том же JSON, что принимает /constraints
func formatConstraints(c models.UserConstraints) string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return "⚙️ Ваши ограничения:\n" + string(data)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCheckPlan),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConstraints),
			tgbotapi.NewKeyboardButton(btnLastCheck),
		),
	)
}

// cancelKeyboard creates a simple keyboard with just Cancel button
func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}
