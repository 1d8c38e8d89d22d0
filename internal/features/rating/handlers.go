// Package rating — handlers.go обрабатывает команду /top_elo.
package rating

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/features/profile"
)

// Handler обрабатывает команды рейтинга.
type Handler struct {
	profiles *profile.Repository
	bot      *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик рейтинга.
func NewHandler(profiles *profile.Repository, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{profiles: profiles, bot: bot}
}

// HandleTopRating обрабатывает команду /top_elo — топ-10 по рейтингу.
func (h *Handler) HandleTopRating(ctx context.Context, chatID int64) {
	top, err := h.profiles.TopByRating(ctx, 10)
	if err != nil {
		log.WithError(err).Error("Ошибка выборки топа по рейтингу")
		h.sendMessage(chatID, "❌ Ошибка получения топа")
		return
	}
	if len(top) == 0 {
		h.sendMessage(chatID, "Пока никто не играл.")
		return
	}

	lines := []string{"🎖 ТОП 10 по ELO:"}
	for i, u := range top {
		name := u.Username
		if name == "" {
			name = fmt.Sprintf("id%d", u.UserID)
		}
		lines = append(lines, fmt.Sprintf("%d. %s — %d (%dW/%dL)",
			i+1, name, u.Rating, u.Wins, u.Losses))
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
