// Package profile — handlers.go обрабатывает команды профиля:
// /profile, /статус, /питомец и списки лидеров.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// RecoveryStatusFunc сообщает, доступно ли восстановление серии.
// Инжектится из модуля daily, чтобы не тянуть его сюда целиком.
type RecoveryStatusFunc func(ctx context.Context, userID int64) (available bool, amount int, left time.Duration)

// Handler обрабатывает команды профиля.
type Handler struct {
	service        *Service
	bot            *tgbotapi.BotAPI
	recoveryStatus RecoveryStatusFunc
}

// NewHandler создаёт новый обработчик команд профиля.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, recoveryStatus RecoveryStatusFunc) *Handler {
	return &Handler{service: service, bot: bot, recoveryStatus: recoveryStatus}
}

// HandleProfile обрабатывает команду /profile — карточка пользователя.
func (h *Handler) HandleProfile(ctx context.Context, chatID, userID int64, username string) {
	u, err := h.service.GetProfile(ctx, userID, username)
	if err != nil {
		log.WithError(err).Error("Ошибка получения профиля")
		h.sendMessage(chatID, "❌ Ошибка получения профиля")
		return
	}

	name := u.Username
	if u.EquippedTitle != nil && *u.EquippedTitle != "" {
		name = fmt.Sprintf("[%s] %s", *u.EquippedTitle, name)
	}

	status := u.ProfileStatus
	if status == "" {
		status = "—"
	}
	pet := "—"
	if u.PetName != nil && *u.PetName != "" {
		pet = *u.PetName
	}

	text := fmt.Sprintf(
		"👤 Профиль: %s\n"+
			"LVL: %d | XP: %d\n"+
			"Монеты: %s\n"+
			"Серия: %d (макс %d)\n"+
			"Ритуалов всего: %d\n"+
			"Питомец: %s\n"+
			"Игры: %dW/%dL | ELO %d\n"+
			"Статус: %s",
		name,
		Level(u.XP), u.XP,
		common.FormatNumber(u.Coins),
		u.CurrentStreak, u.MaxStreak,
		u.TotalActions,
		pet,
		u.Wins, u.Losses, u.Rating,
		status,
	)

	if h.recoveryStatus != nil {
		if available, amount, left := h.recoveryStatus(ctx, userID); available {
			hrs := int(left.Hours())
			text += fmt.Sprintf("\n♻ Доступно восстановление %d серии (/recover) ~ %dч", amount, hrs)
		}
	}

	h.sendMessage(chatID, text)
}

// HandleSetStatus обрабатывает команду /статус <текст>.
func (h *Handler) HandleSetStatus(ctx context.Context, chatID, userID int64, username string, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "Использование: /статус <текст>")
		return
	}
	if err := h.service.SetStatus(ctx, userID, username, strings.Join(args, " ")); err != nil {
		log.WithError(err).Error("Ошибка обновления статуса")
		h.sendMessage(chatID, "❌ Не удалось обновить статус")
		return
	}
	h.sendMessage(chatID, "Статус обновлён.")
}

// HandleSetPet обрабатывает команду /питомец <имя>.
func (h *Handler) HandleSetPet(ctx context.Context, chatID, userID int64, username string, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "Использование: /питомец <имя> (до 30 символов)")
		return
	}
	name := strings.Join(args, " ")
	if err := h.service.SetPetName(ctx, userID, username, name); err != nil {
		h.sendMessage(chatID, "❌ "+err.Error())
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Имя питомца установлено: %s", name))
}

// HandleTopStreak обрабатывает команду /лидеры — топ-10 по текущей серии.
func (h *Handler) HandleTopStreak(ctx context.Context, chatID int64) {
	top, err := h.service.TopByStreak(ctx, 10)
	if err != nil {
		log.WithError(err).Error("Ошибка выборки лидеров")
		h.sendMessage(chatID, "❌ Ошибка получения топа")
		return
	}
	if len(top) == 0 {
		h.sendMessage(chatID, "Пока пусто.")
		return
	}

	lines := []string{"🏆 ТОП 10 по текущей серии:"}
	for i, u := range top {
		lines = append(lines, fmt.Sprintf("%d. %s — %d🔥 (макс %d, всего %d)",
			i+1, displayName(u), u.CurrentStreak, u.MaxStreak, u.TotalActions))
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

// HandleTopXP обрабатывает команду /top_xp — топ-10 по уровню.
func (h *Handler) HandleTopXP(ctx context.Context, chatID int64) {
	top, err := h.service.TopByXP(ctx, 10)
	if err != nil {
		log.WithError(err).Error("Ошибка выборки топа уровней")
		h.sendMessage(chatID, "❌ Ошибка получения топа")
		return
	}
	if len(top) == 0 {
		h.sendMessage(chatID, "Нет данных уровней.")
		return
	}

	lines := []string{"🌟 ТОП уровней:"}
	for i, u := range top {
		lines = append(lines, fmt.Sprintf("%d. %s — LVL %d (%d XP)",
			i+1, displayName(u), Level(u.XP), u.XP))
	}
	h.sendMessage(chatID, strings.Join(lines, "\n"))
}

func displayName(u *UserStats) string {
	if u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("id%d", u.UserID)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
