// Package weekly — handlers.go обрабатывает команду /week.
package weekly

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает команды недельной цели.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleWeek обрабатывает команду /week — прогресс недельной цели.
func (h *Handler) HandleWeek(ctx context.Context, chatID int64) {
	st, err := h.service.CurrentStatus(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения недельного прогресса")
		h.sendMessage(chatID, "❌ Ошибка получения недельного прогресса")
		return
	}
	h.sendMessage(chatID, FormatStatus(st))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
