// Package achievements — handlers.go обрабатывает команды
// /ачивки, /титулы и /equip.
package achievements

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// Handler обрабатывает команды достижений и титулов.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAchievements обрабатывает команду /ачивки.
func (h *Handler) HandleAchievements(ctx context.Context, chatID, userID int64) {
	earned, err := h.service.ListAchievements(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения достижений")
		h.sendMessage(chatID, "❌ Ошибка получения достижений")
		return
	}
	if len(earned) == 0 {
		h.sendMessage(chatID, "Пока нет достижений. Делай ежедневку каждый день, чтобы открыть! 🔥")
		return
	}

	lines := []string{"🏅 Твои достижения:"}
	for _, e := range earned {
		msg, ok := Descriptions[e.Code]
		if !ok {
			msg = e.Code
		}
		lines = append(lines, "• "+msg)
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

// HandleTitles обрабатывает команду /титулы.
func (h *Handler) HandleTitles(ctx context.Context, chatID, userID int64) {
	titles, err := h.service.ListTitles(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения титулов")
		h.sendMessage(chatID, "❌ Ошибка получения титулов")
		return
	}
	if len(titles) == 0 {
		h.sendMessage(chatID, "Нет титулов. Получай ачивки или покупай в /shop.")
		return
	}

	lines := []string{"Твои титулы:"}
	for _, t := range titles {
		lines = append(lines, "• "+t)
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

// HandleEquip обрабатывает команду /equip <точное название титула>.
func (h *Handler) HandleEquip(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "Использование: /equip <точное название титула>")
		return
	}
	title := strings.Join(args, " ")

	err := h.service.Equip(ctx, userID, title)
	switch {
	case err == nil:
		h.sendMessage(chatID, fmt.Sprintf("Активирован титул: %s", title))
	case errors.Is(err, common.ErrTitleNotOwned):
		h.sendMessage(chatID, "Нет такого титула или не получен.")
	default:
		log.WithError(err).Error("Ошибка установки титула")
		h.sendMessage(chatID, "❌ Не удалось надеть титул")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
