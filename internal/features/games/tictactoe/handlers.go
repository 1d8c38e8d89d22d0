// Package tictactoe — handlers.go связывает дуэль с Telegram:
// вызов через reply, ходы через inline-клавиатуру, рейтинг по итогу.
package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/features/rating"
)

// Префикс callback-данных ходов: "ttt:<row>:<col>".
const callbackPrefix = "ttt:"

// Handler обрабатывает дуэли в крестики-нолики.
type Handler struct {
	manager *Manager
	rating  *rating.Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик дуэлей.
func NewHandler(manager *Manager, ratingSvc *rating.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{manager: manager, rating: ratingSvc, bot: bot}
}

// HandleChallenge начинает партию: команда должна быть ответом на
// сообщение соперника.
func (h *Handler) HandleChallenge(ctx context.Context, msg *tgbotapi.Message) {
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		h.sendMessage(msg.Chat.ID, "Вызови соперника: ответь командой на его сообщение.")
		return
	}
	opponent := msg.ReplyToMessage.From
	if opponent.ID == msg.From.ID {
		h.sendMessage(msg.Chat.ID, "С самим собой нельзя, нужен соперник.")
		return
	}
	if opponent.IsBot {
		h.sendMessage(msg.Chat.ID, "Боты не играют.")
		return
	}

	nameX := displayName(msg.From)
	nameO := displayName(opponent)

	// Сначала отправляем доску, потом регистрируем партию по её message_id.
	board := Board{}
	out := tgbotapi.NewMessage(msg.Chat.ID, headerText(nameX, nameO, nameX))
	out.ReplyMarkup = boardKeyboard(board)
	sent, err := h.bot.Send(out)
	if err != nil {
		log.WithError(err).Error("Ошибка отправки доски")
		return
	}
	h.manager.Start(int64(sent.MessageID), msg.From.ID, opponent.ID, nameX, nameO)
}

// HandleCallback обрабатывает нажатие клетки.
func (h *Handler) HandleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	row, col, ok := parseCallback(cb.Data)
	if !ok {
		return
	}
	messageID := int64(cb.Message.MessageID)

	g, err := h.manager.Move(messageID, cb.From.ID, row, col)
	if err != nil {
		h.answerCallback(cb.ID, moveErrorText(err), true)
		return
	}

	text := ""
	switch g.Result {
	case Empty:
		turnName := g.NameX
		if g.Turn == O {
			turnName = g.NameO
		}
		text = headerText(g.NameX, g.NameO, turnName)
	case X:
		text = fmt.Sprintf("🎉 Победил %s (❌)! 🎉", g.NameX)
		h.applyResult(ctx, g.PlayerX, g.PlayerO, rating.ResultWin)
	case O:
		text = fmt.Sprintf("🎉 Победил %s (⭕)! 🎉", g.NameO)
		h.applyResult(ctx, g.PlayerX, g.PlayerO, rating.ResultLoss)
	case Tie:
		text = "Ничья! 🤝"
		h.applyResult(ctx, g.PlayerX, g.PlayerO, rating.ResultDraw)
	}

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	kb := boardKeyboard(g.Board)
	edit.ReplyMarkup = &kb
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка обновления доски")
	}
	h.answerCallback(cb.ID, "", false)
}

func (h *Handler) applyResult(ctx context.Context, playerX, playerO int64, result float64) {
	if err := h.rating.Update(ctx, playerX, playerO, result); err != nil {
		log.WithError(err).Error("Ошибка обновления рейтинга после партии")
	}
}

func headerText(nameX, nameO, turnName string) string {
	return fmt.Sprintf("Крестики-нолики: %s (❌) vs %s (⭕)\n\nХод: %s", nameX, nameO, turnName)
}

func boardKeyboard(b Board) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 3)
	for r := 0; r < 3; r++ {
		row := make([]tgbotapi.InlineKeyboardButton, 0, 3)
		for c := 0; c < 3; c++ {
			data := fmt.Sprintf("%s%d:%d", callbackPrefix, r, c)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(Symbol(b.Cell(r, c)), data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// parseCallback разбирает "ttt:<row>:<col>".
func parseCallback(data string) (row, col int, ok bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return 0, 0, false
	}
	parts := strings.Split(strings.TrimPrefix(data, callbackPrefix), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	row, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || row < 0 || row > 2 || col < 0 || col > 2 {
		return 0, 0, false
	}
	return row, col, true
}

// IsGameCallback сообщает, относится ли callback к дуэли.
func IsGameCallback(data string) bool {
	return strings.HasPrefix(data, callbackPrefix)
}

func moveErrorText(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Игра не найдена. Начни новую."
	case errors.Is(err, ErrNotYourGame):
		return "Это не твоя партия!"
	case errors.Is(err, ErrNotYourTurn):
		return "Сейчас не твой ход!"
	case errors.Is(err, ErrCellOccupied):
		return "Эта клетка уже занята!"
	case errors.Is(err, ErrFinished):
		return "Партия уже завершена."
	default:
		return "Ошибка хода"
	}
}

func (h *Handler) answerCallback(id, text string, alert bool) {
	cb := tgbotapi.NewCallback(id, text)
	cb.ShowAlert = alert
	if _, err := h.bot.Request(cb); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
