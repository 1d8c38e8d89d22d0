// Package notify — handlers.go обрабатывает /notify_on и /notify_off.
package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает команды уведомлений.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик уведомлений.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleNotifyOn включает ежедневные напоминания.
func (h *Handler) HandleNotifyOn(ctx context.Context, chatID, userID int64) {
	if err := h.service.SetDaily(ctx, userID, true); err != nil {
		log.WithError(err).Error("Ошибка включения напоминаний")
		h.sendMessage(chatID, "❌ Не удалось обновить настройки")
		return
	}
	h.sendMessage(chatID, "Ежедневные напоминания включены.")
}

// HandleNotifyOff отключает ежедневные напоминания.
func (h *Handler) HandleNotifyOff(ctx context.Context, chatID, userID int64) {
	if err := h.service.SetDaily(ctx, userID, false); err != nil {
		log.WithError(err).Error("Ошибка отключения напоминаний")
		h.sendMessage(chatID, "❌ Не удалось обновить настройки")
		return
	}
	h.sendMessage(chatID, "Ежедневные напоминания отключены.")
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
