// Package shop — handlers.go обрабатывает команды /shop и /buy.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// Handler обрабатывает команды магазина.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик магазина.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleShop обрабатывает команду /shop — список товаров.
func (h *Handler) HandleShop(ctx context.Context, chatID int64) {
	lines := []string{"🛒 Магазин"}
	for _, it := range Catalog {
		lines = append(lines, fmt.Sprintf("• %s — %s (/buy %s)", it.Name, common.FormatCoins(it.Cost), it.Code))
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

// HandleBuy обрабатывает команду /buy <код>.
func (h *Handler) HandleBuy(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "Использование: /buy <код>")
		return
	}
	item, err := h.service.Buy(ctx, userID, args[0])
	switch {
	case err == nil:
		if item.Kind == KindTitle {
			h.sendMessage(chatID, fmt.Sprintf("Получен титул: %s! /titles чтобы посмотреть.", item.Name))
		} else {
			h.sendMessage(chatID, fmt.Sprintf("Получен предмет: %s (хранится).", item.Name))
		}
	case errors.Is(err, common.ErrUnknownItem):
		h.sendMessage(chatID, "Нет такого товара.")
	case errors.Is(err, common.ErrInsufficientCoins):
		h.sendMessage(chatID, "Недостаточно монет.")
	case errors.Is(err, common.ErrUnknownUser):
		h.sendMessage(chatID, "Нет данных. Сделай первый ритуал!")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка покупки")
		h.sendMessage(chatID, "❌ Ошибка покупки")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
