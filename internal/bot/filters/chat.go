// Package filters решает, имеет ли сообщение право быть обработанным:
// основной чат — всегда, личка — только для участников основного чата.
package filters

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/profile"
)

// ChatFilter проверяет доступ к боту.
type ChatFilter struct {
	floodChatID int64
	profiles    *profile.Repository
	bot         *tgbotapi.BotAPI
	// Кэш положительных ответов GetChatMember: членство в чате меняется
	// редко, а дёргать Telegram API на каждое личное сообщение дорого.
	memberCache *lru.Cache
}

// NewChatFilter создаёт фильтр доступа.
func NewChatFilter(floodChatID int64, profiles *profile.Repository, bot *tgbotapi.BotAPI) (*ChatFilter, error) {
	cache, err := lru.New(1024)
	if err != nil {
		return nil, err
	}
	return &ChatFilter{
		floodChatID: floodChatID,
		profiles:    profiles,
		bot:         bot,
		memberCache: cache,
	}, nil
}

// CheckAccess возвращает true, если сообщение можно обрабатывать.
func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Warn("nil message.From (сервисное сообщение?)")
		return false
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	logger := log.WithFields(log.Fields{
		"component":     "ChatFilter",
		"chat_id":       chatID,
		"user_id":       userID,
		"flood_chat_id": f.floodChatID,
	})

	// 1) Разрешённый чат
	if chatID == f.floodChatID {
		return true
	}

	// 2) Личка: кэш → БД → Telegram API
	if message.Chat.IsPrivate() {
		if _, ok := f.memberCache.Get(userID); ok {
			return true
		}

		if _, err := f.profiles.GetByUserID(ctx, nil, userID); err == nil {
			f.memberCache.Add(userID, struct{}{})
			return true
		} else if !errors.Is(err, common.ErrNoRecord) {
			logger.WithError(err).Error("Проверка участника по БД не удалась")
			return false
		}

		// БД не знает пользователя: проверяем членство через Telegram API
		cm, err := f.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
				ChatID: f.floodChatID,
				UserID: userID,
			},
		})
		if err != nil {
			logger.WithError(err).Error("Проверка участника через Telegram не удалась")
			return false
		}

		switch cm.Status {
		case "creator", "administrator", "member", "restricted":
			if err := f.profiles.Ensure(ctx, nil, userID, message.From.UserName); err != nil {
				logger.WithError(err).Warn("Не удалось дозаписать участника в БД (пропускаем всё равно)")
			}
			f.memberCache.Add(userID, struct{}{})
			logger.WithField("tg_status", cm.Status).Info("Доступ: личка, участник чата")
			return true

		default:
			logger.WithField("tg_status", cm.Status).Info("Отказ: не участник основного чата")
			msg := tgbotapi.NewMessage(chatID, "❌ Бот работает только для участников основного чата")
			if _, sendErr := f.bot.Send(msg); sendErr != nil {
				logger.WithError(sendErr).Warn("Не удалось отправить отказ")
			}
			return false
		}
	}

	// 3) Остальные чаты игнорируем
	logger.Info("Отказ: чужой групповой чат")
	return false
}
