// Package daily — handlers.go обрабатывает команды ритуала:
// сам ритуал, /stats, /daily и /recover.
package daily

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// Handler обрабатывает команды ритуала.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	tzName  string
}

// NewHandler создаёт новый обработчик ритуала.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, tzName string) *Handler {
	return &Handler{service: service, bot: bot, tzName: tzName}
}

// HandleRitual обрабатывает попытку ритуала.
func (h *Handler) HandleRitual(ctx context.Context, chatID, userID int64, username string) {
	out, err := h.service.Perform(ctx, userID, username)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка выполнения ритуала")
		h.sendMessage(chatID, "❌ Что-то пошло не так, попробуй ещё раз")
		return
	}

	u, _ := h.service.GetStats(ctx, userID)
	pet := ""
	if u != nil && u.PetName != nil && *u.PetName != "" {
		pet = fmt.Sprintf(" со своим «%s»", *u.PetName)
	}

	if !out.Performed {
		hrs := int(out.UntilMidnight.Hours())
		mins := int(out.UntilMidnight.Minutes()) % 60
		h.sendMessage(chatID, fmt.Sprintf(
			"⏳ %s, ты уже провёл ритуал%s сегодня!\nСледующая возможность в 00:00 (таймзона %s) через ~ %d ч %d мин",
			username, pet, h.tzName, hrs, mins,
		))
		return
	}

	flames := out.Streak
	if flames > 5 {
		flames = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔥 %s провёл ритуал%s! %s\n\n", username, pet, strings.Repeat("🔥", flames))
	fmt.Fprintf(&b, "📊 Статистика:\nВсего ритуалов: %d\nТекущая серия: %d %s (макс: %d)",
		out.Total, out.Streak, common.PluralizeDays(out.Streak), out.MaxStreak)
	if out.QuestDone {
		b.WriteString("\n🎯 Daily квест выполнен (+2 XP, +1 монета)")
	}
	if out.BrokeStreak {
		b.WriteString("\n💤 Прошлая серия оборвалась, начинаем заново!")
		if out.SnapshotSaved > 0 {
			fmt.Fprintf(&b, " Снимок %d сохранён — /recover", out.SnapshotSaved)
		}
	}
	h.sendMessage(chatID, b.String())

	// Разблокировки — личным сообщением, после фиксации. Недоставка не страшна.
	for _, un := range out.Unlocked {
		h.sendMessage(userID, fmt.Sprintf("🏅 Достижение: %s", un.Message))
	}
}

// HandleStats обрабатывает команду /stats — краткая сводка серии.
func (h *Handler) HandleStats(ctx context.Context, chatID, userID int64) {
	u, err := h.service.GetStats(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoRecord) {
			h.sendMessage(chatID, "Нет данных. Сделай первый ритуал!")
			return
		}
		log.WithError(err).Error("Ошибка чтения статистики")
		h.sendMessage(chatID, "❌ Ошибка получения статистики")
		return
	}
	text := fmt.Sprintf(
		"📊 Серия: %d %s (макс %d)\nВсего ритуалов: %d %s\nXP: %d | %s",
		u.CurrentStreak, common.PluralizeDays(u.CurrentStreak), u.MaxStreak,
		u.TotalActions, common.PluralizeTimes(u.TotalActions),
		u.XP, common.FormatCoinsAmount(u.Coins),
	)
	if u.LastAction != nil {
		text += "\nПоследний ритуал: " + common.FormatDateTime(*u.LastAction, h.service.clock.Location())
	}
	h.sendMessage(chatID, text)
}

// HandleDaily обрабатывает команду /daily — статус дневного квеста.
func (h *Handler) HandleDaily(ctx context.Context, chatID, userID int64) {
	done, err := h.service.QuestStatus(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения дневного квеста")
		h.sendMessage(chatID, "❌ Ошибка получения квеста")
		return
	}
	status := "⏳ Не выполнен — просто сделай ежедневку сегодня"
	if done {
		status = "✅ Выполнен (+2 XP, +1 монета)"
	}
	h.sendMessage(chatID, fmt.Sprintf("🎯 Daily квест: «Сделай ежедневку»\nСтатус: %s", status))
}

// HandleRecover обрабатывает команду /recover — трата снимка восстановления.
func (h *Handler) HandleRecover(ctx context.Context, chatID, userID int64) {
	restored, err := h.service.Recover(ctx, userID)
	switch {
	case err == nil:
		h.sendMessage(chatID, fmt.Sprintf("♻ Восстановлено! Текущая серия теперь %d", restored))
	case errors.Is(err, common.ErrRecoveryUnavailable):
		h.sendMessage(chatID, "Нет доступного восстановления.")
	case errors.Is(err, common.ErrRecoveryExpired):
		h.sendMessage(chatID, "Срок восстановления истёк.")
	case errors.Is(err, common.ErrNothingToRestore):
		h.sendMessage(chatID, "Нечего восстанавливать.")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка восстановления серии")
		h.sendMessage(chatID, "❌ Ошибка восстановления")
	}
}

// NotifyBreak — уведомление свипера об обрыве серии (личным сообщением).
func (h *Handler) NotifyBreak(userID int64, graceHours int) {
	h.sendMessage(userID, fmt.Sprintf(
		"💤 Серия прервана. Ты пропустил слишком долго (>%dч). Начни заново! 🔄", graceHours,
	))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
