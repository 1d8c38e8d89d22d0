// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия → пошаговый диалог.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAdminMessage обрабатывает любое сообщение от администратора в DM.
// Определяет текущее состояние диалога и маршрутизирует сообщение.
// Возвращает false, если сообщение не относится к панели.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	state := h.service.GetState(userID)

	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	// /login <пароль> — вход одной строкой, без диалога.
	if pass, ok := strings.CutPrefix(text, "/login "); ok {
		h.handlePasswordInput(ctx, chatID, userID, strings.TrimSpace(pass))
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.service.SetState(userID, StateAwaitingPassword, nil)
		return true
	}

	if err := h.service.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Debug("Не удалось обновить активность сессии")
	}

	if state != nil {
		switch state.State {
		case StateBroadcastText:
			h.handleBroadcastText(ctx, chatID, userID, text)
			return true
		case StateGrantCoins:
			h.handleGrantCoins(ctx, chatID, userID, text)
			return true
		}
	}

	switch text {
	case "Рассылка":
		h.sendMessage(chatID, "Введите текст рассылки:")
		h.service.SetState(userID, StateBroadcastText, nil)
		return true
	case "Начислить монеты":
		h.sendMessage(chatID, "Введите: <user_id> <сумма> (сумма может быть отрицательной)")
		h.service.SetState(userID, StateGrantCoins, nil)
		return true
	case "Выйти":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка выхода из админ-панели")
		}
		h.sendMessage(chatID, "Сессия завершена.")
		return true
	case "Админ", "Панель", "админ", "панель":
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	h.service.ClearState(userID)
	switch {
	case err == nil:
		h.sendMessage(chatID, "✅ Аутентификация успешна!")
		h.showKeyboard(chatID)
	case errors.Is(err, common.ErrTooManyAttempts):
		h.sendMessage(chatID, "❌ Слишком много попыток, подождите 1 час")
	case errors.Is(err, common.ErrWrongPassword):
		h.sendMessage(chatID, "❌ Неверный пароль")
	default:
		log.WithError(err).Error("Ошибка проверки пароля")
		h.sendMessage(chatID, "❌ Ошибка аутентификации")
	}
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Рассылка"),
			tgbotapi.NewKeyboardButton("Начислить монеты"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выйти"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Админ-панель открыта")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

// handleBroadcastText рассылает введённый текст всем пользователям.
func (h *Handler) handleBroadcastText(ctx context.Context, chatID, userID int64, text string) {
	h.service.ClearState(userID)
	text = strings.TrimSpace(text)
	if text == "" {
		h.sendMessage(chatID, "❌ Пустой текст, рассылка отменена")
		return
	}

	sent, err := h.service.Broadcast(ctx, "📢 "+text, func(uid int64, body string) error {
		_, err := h.bot.Send(tgbotapi.NewMessage(uid, body))
		return err
	})
	if err != nil {
		log.WithError(err).Error("Ошибка рассылки")
		h.sendMessage(chatID, "❌ Ошибка рассылки")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Рассылка завершена: доставлено %d", sent))
}

// handleGrantCoins начисляет монеты по вводу "<user_id> <сумма>".
func (h *Handler) handleGrantCoins(ctx context.Context, chatID, userID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		h.sendMessage(chatID, "❌ Формат: <user_id> <сумма>")
		return
	}
	target, err1 := strconv.ParseInt(parts[0], 10, 64)
	amount, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		h.sendMessage(chatID, "❌ Формат: <user_id> <сумма>")
		return
	}

	h.service.ClearState(userID)
	balance, err := h.service.GrantCoins(ctx, userID, target, amount)
	switch {
	case err == nil:
		h.sendMessage(chatID, fmt.Sprintf("✅ Готово. Новый баланс пользователя %d: %s", target, common.FormatCoinsAmount(balance)))
	case errors.Is(err, common.ErrUnknownUser):
		h.sendMessage(chatID, "❌ Пользователь не найден")
	default:
		log.WithError(err).Error("Ошибка начисления монет")
		h.sendMessage(chatID, "❌ Ошибка начисления")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
