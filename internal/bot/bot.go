// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go принимает апдейты, прогоняет их через фильтры и маршрутизирует
// команды по обработчикам фич.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/bot/filters"
	"bratva.chat/telegram-bot/internal/bot/middleware"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/features/achievements"
	"bratva.chat/telegram-bot/internal/features/admin"
	"bratva.chat/telegram-bot/internal/features/daily"
	"bratva.chat/telegram-bot/internal/features/fun"
	"bratva.chat/telegram-bot/internal/features/games/tictactoe"
	"bratva.chat/telegram-bot/internal/features/notify"
	"bratva.chat/telegram-bot/internal/features/profile"
	"bratva.chat/telegram-bot/internal/features/rating"
	"bratva.chat/telegram-bot/internal/features/shop"
	"bratva.chat/telegram-bot/internal/features/weekly"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	profileService *profile.Service

	profileHandler *profile.Handler
	dailyHandler   *daily.Handler
	weeklyHandler  *weekly.Handler
	achHandler     *achievements.Handler
	shopHandler    *shop.Handler
	ratingHandler  *rating.Handler
	adminHandler   *admin.Handler
	funHandler     *fun.Handler
	gameHandler    *tictactoe.Handler
	notifyHandler  *notify.Handler

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	chatFilter *filters.ChatFilter,
	profileService *profile.Service,
	profileHandler *profile.Handler,
	dailyHandler *daily.Handler,
	weeklyHandler *weekly.Handler,
	achHandler *achievements.Handler,
	shopHandler *shop.Handler,
	ratingHandler *rating.Handler,
	adminHandler *admin.Handler,
	funHandler *fun.Handler,
	gameHandler *tictactoe.Handler,
	notifyHandler *notify.Handler,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		chatFilter:     chatFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		profileService: profileService,
		profileHandler: profileHandler,
		dailyHandler:   dailyHandler,
		weeklyHandler:  weeklyHandler,
		achHandler:     achHandler,
		shopHandler:    shopHandler,
		ratingHandler:  ratingHandler,
		adminHandler:   adminHandler,
		funHandler:     funHandler,
		gameHandler:    gameHandler,
		notifyHandler:  notifyHandler,
		parser:         NewCommandParser(),
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	// Нажатия inline-кнопок (ходы в дуэли)
	if update.CallbackQuery != nil {
		if b.cfg.FeatureGamesEnabled && tictactoe.IsGameCallback(update.CallbackQuery.Data) {
			b.gameHandler.HandleCallback(ctx, update.CallbackQuery)
		}
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}
	message := update.Message

	middleware.LogMessage(message)

	// Проверяем доступ (FLOOD_CHAT_ID или DM участника)
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	// Rate limiting
	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID
	username := displayName(message.From)

	// Ленивое создание записи — ошибки нельзя глотать молча
	if err := b.profileService.EnsureUser(ctx, userID, username); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureUser failed")
	}

	// В DM проверяем админ-панель
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if isCommand {
		b.routeCommand(ctx, message, cmd, args)
		return
	}

	// Не команда: триггерное слово считается попыткой ритуала
	if strings.Contains(strings.ToLower(message.Text), "ритуал") {
		b.dailyHandler.HandleRitual(ctx, chatID, userID, username)
		return
	}

	// Обращение к Милане
	if b.cfg.FeatureAIEnabled && fun.MatchesMilana(message.Text) {
		b.funHandler.HandleMilana(chatID, message.Text)
	}
}

// knownCommands — канонические команды для подсказки при опечатке.
var knownCommands = []string{
	"ритуал", "профиль", "статус", "питомец", "лидеры", "top_xp", "top_elo",
	"stats", "daily", "week", "recover", "ачивки", "титулы", "equip",
	"shop", "buy", "fun", "tictactoe", "notify_on", "notify_off", "help",
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, message *tgbotapi.Message, cmd string, args []string) {
	chatID := message.Chat.ID
	userID := message.From.ID
	username := displayName(message.From)

	log.WithFields(log.Fields{"cmd": cmd, "args": args}).Debug("routing command")

	switch cmd {
	case "start", "help":
		b.sendMessage(chatID, helpText())

	case "login":
		if message.Chat.IsPrivate() {
			b.adminHandler.HandleAdminMessage(ctx, chatID, userID, "/login "+strings.Join(args, " "))
		}

	case "ритуал", "ritual":
		b.dailyHandler.HandleRitual(ctx, chatID, userID, username)

	case "stats", "статистика":
		b.dailyHandler.HandleStats(ctx, chatID, userID)

	case "profile", "профиль":
		b.profileHandler.HandleProfile(ctx, chatID, userID, username)

	case "set_status", "статус":
		b.profileHandler.HandleSetStatus(ctx, chatID, userID, username, args)

	case "pet", "питомец":
		b.profileHandler.HandleSetPet(ctx, chatID, userID, username, args)

	case "leaders", "лидеры", "топ":
		b.profileHandler.HandleTopStreak(ctx, chatID)

	case "top_xp", "top_level":
		b.profileHandler.HandleTopXP(ctx, chatID)

	case "top_elo":
		b.ratingHandler.HandleTopRating(ctx, chatID)

	case "daily", "квест":
		b.dailyHandler.HandleDaily(ctx, chatID, userID)

	case "week", "неделя":
		b.weeklyHandler.HandleWeek(ctx, chatID)

	case "recover":
		b.dailyHandler.HandleRecover(ctx, chatID, userID)

	case "achievements", "ачивки":
		b.achHandler.HandleAchievements(ctx, chatID, userID)

	case "titles", "титулы":
		b.achHandler.HandleTitles(ctx, chatID, userID)

	case "equip":
		b.achHandler.HandleEquip(ctx, chatID, userID, args)

	case "shop", "магазин":
		if b.cfg.FeatureShopEnabled {
			b.shopHandler.HandleShop(ctx, chatID)
		} else {
			b.sendMessage(chatID, "🛒 Магазин временно отключён")
		}

	case "buy":
		if b.cfg.FeatureShopEnabled {
			b.shopHandler.HandleBuy(ctx, chatID, userID, args)
		}

	case "tictactoe", "крестики":
		if b.cfg.FeatureGamesEnabled {
			b.gameHandler.HandleChallenge(ctx, message)
		} else {
			b.sendMessage(chatID, "🎮 Игры временно отключены")
		}

	case "fun":
		b.funHandler.HandleFun(chatID)

	case "notify_on":
		b.notifyHandler.HandleNotifyOn(ctx, chatID, userID)

	case "notify_off":
		b.notifyHandler.HandleNotifyOff(ctx, chatID, userID)

	default:
		if fun.IsRPAction(cmd) {
			b.handleRP(message, cmd)
			return
		}
		if suggestion, ok := SuggestCommand(cmd, knownCommands); ok {
			b.sendMessage(chatID, fmt.Sprintf("Не знаю такой команды. Может, /%s?", suggestion))
		}
	}
}

// handleRP достаёт цель RP-действия из reply.
func (b *Bot) handleRP(message *tgbotapi.Message, cmd string) {
	initiator := message.From.FirstName
	target := ""
	selfTarget := false
	if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil {
		target = message.ReplyToMessage.From.FirstName
		selfTarget = message.ReplyToMessage.From.ID == message.From.ID
	}
	b.funHandler.HandleRP(message.Chat.ID, cmd, initiator, target, selfTarget)
}

func helpText() string {
	return "Я живой. Основное:\n" +
		"!ритуал — ежедневка\n" +
		"/profile — профиль, /stats — серия\n" +
		"/daily — квест, /week — цель недели\n" +
		"/recover — восстановить серию\n" +
		"/лидеры /top_xp /top_elo — топы\n" +
		"/shop /buy — магазин, /titles /equip — титулы\n" +
		"/tictactoe (ответом на сообщение) — дуэль\n" +
		"/fun — случайная фраза, /notify_on /notify_off — напоминания\n" +
		"/login <пароль> (в личке) — админ"
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для напоминаний
// и рассылок). Возвращает ошибку вызывающему: недоставка — его решение.
func (b *Bot) SendMessageToUser(userID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(userID, text))
	return err
}
