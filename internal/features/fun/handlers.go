// Package fun — handlers.go связывает развлекательные функции с Telegram.
package fun

import (
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает развлекательные команды.
type Handler struct {
	bot *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик развлечений.
func NewHandler(bot *tgbotapi.BotAPI) *Handler {
	return &Handler{bot: bot}
}

// HandleFun обрабатывает команду /fun — случайная фраза.
func (h *Handler) HandleFun(chatID int64) {
	h.sendMessage(chatID, funPhrases[rand.Intn(len(funPhrases))])
}

// HandleRP обрабатывает RP-действие. target — имя автора сообщения,
// на которое ответили; пустая строка, если ответа не было.
func (h *Handler) HandleRP(chatID int64, command, initiator, target string, selfTarget bool) {
	if target == "" {
		h.sendMessage(chatID, "Эту команду нужно использовать в ответ на сообщение пользователя!")
		return
	}
	if selfTarget {
		h.sendMessage(chatID, RPSelfResponse(command, initiator))
		return
	}
	options := RPResponses(command, initiator, target)
	h.sendMessage(chatID, options[rand.Intn(len(options))])
}

// HandleMilana отвечает на сообщение, обращённое к Милане.
func (h *Handler) HandleMilana(chatID int64, text string) {
	options := MilanaResponses(CleanRequest(text))
	h.sendMessage(chatID, options[rand.Intn(len(options))])
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
