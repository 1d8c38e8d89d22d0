// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/bot"
	"bratva.chat/telegram-bot/internal/bot/filters"
	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/db/postgres"
	"bratva.chat/telegram-bot/internal/features/achievements"
	"bratva.chat/telegram-bot/internal/features/admin"
	"bratva.chat/telegram-bot/internal/features/daily"
	"bratva.chat/telegram-bot/internal/features/fun"
	"bratva.chat/telegram-bot/internal/features/games/tictactoe"
	"bratva.chat/telegram-bot/internal/features/journal"
	"bratva.chat/telegram-bot/internal/features/notify"
	"bratva.chat/telegram-bot/internal/features/profile"
	"bratva.chat/telegram-bot/internal/features/rating"
	"bratva.chat/telegram-bot/internal/features/shop"
	"bratva.chat/telegram-bot/internal/features/weekly"
	"bratva.chat/telegram-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Часы приложения ===
	clock, err := common.NewClock(cfg.AppTimezone)
	if err != nil {
		log.WithError(err).Warn("Таймзона из конфига не загрузилась, работаем на запасной")
	}

	// === 3. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 4. Репозитории ===
	profileRepo := profile.NewRepository(pool)
	questRepo := daily.NewRepository(pool)
	achRepo := achievements.NewRepository(pool)
	weeklyRepo := weekly.NewRepository(pool)
	journalRepo := journal.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)
	notifyRepo := notify.NewRepository(pool)

	// === 5. Сервисы ===
	profileService := profile.NewService(profileRepo, cfg)
	achService := achievements.NewService(achRepo, profileRepo, journalRepo)
	weeklyService := weekly.NewService(weeklyRepo, clock, cfg)
	dailyService := daily.NewService(pool, profileRepo, questRepo, weeklyService, achService, journalRepo, clock, cfg)
	ratingService := rating.NewService(pool, profileRepo, cfg)
	shopService := shop.NewService(pool, profileRepo, achRepo, journalRepo)
	adminService := admin.NewService(adminRepo, profileRepo, journalRepo, pool, cfg)
	notifyService := notify.NewService(notifyRepo, clock)

	// === 6. Обработчики ===
	profileHandler := profile.NewHandler(profileService, botAPI, dailyService.RecoveryStatus)
	dailyHandler := daily.NewHandler(dailyService, botAPI, cfg.AppTimezone)
	weeklyHandler := weekly.NewHandler(weeklyService, botAPI)
	achHandler := achievements.NewHandler(achService, botAPI)
	shopHandler := shop.NewHandler(shopService, botAPI)
	ratingHandler := rating.NewHandler(profileRepo, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)
	funHandler := fun.NewHandler(botAPI)
	gameHandler := tictactoe.NewHandler(tictactoe.NewManager(), ratingService, botAPI)
	notifyHandler := notify.NewHandler(notifyService, botAPI)

	// === 7. Фильтры ===
	chatFilter, err := filters.NewChatFilter(cfg.FloodChatID, profileRepo, botAPI)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания фильтра чатов: %w", err)
	}

	// === 8. Собираем бота ===
	b := bot.New(
		botAPI, cfg, chatFilter,
		profileService,
		profileHandler,
		dailyHandler,
		weeklyHandler,
		achHandler,
		shopHandler,
		ratingHandler,
		adminHandler,
		funHandler,
		gameHandler,
		notifyHandler,
	)

	// === 9. Планировщик задач ===
	scheduler := jobs.NewScheduler(
		dailyService, weeklyService, notifyService, clock,
		func(userID int64, streak int) {
			dailyHandler.NotifyBreak(userID, cfg.StreakGraceHours)
		},
		b.SendMessageToUser,
		func(text string) {
			if err := b.SendMessageToUser(cfg.FloodChatID, text); err != nil {
				log.WithError(err).Error("Не удалось отправить сообщение в чат")
			}
		},
	)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001UserStats},
		{2, migration002Achievements},
		{3, migration003Quests},
		{4, migration004Weekly},
		{5, migration005Events},
		{6, migration006Admin},
		{7, migration007Prefs},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}
	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001UserStats = `
CREATE TABLE IF NOT EXISTS user_stats (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255) NOT NULL DEFAULT '',
    last_action TIMESTAMPTZ,
    total_actions INTEGER NOT NULL DEFAULT 0,
    current_streak INTEGER NOT NULL DEFAULT 0,
    max_streak INTEGER NOT NULL DEFAULT 0,
    break_notified BOOLEAN NOT NULL DEFAULT FALSE,
    xp INTEGER NOT NULL DEFAULT 0,
    coins BIGINT NOT NULL DEFAULT 0,
    rating INTEGER NOT NULL DEFAULT 1000,
    wins INTEGER NOT NULL DEFAULT 0,
    losses INTEGER NOT NULL DEFAULT 0,
    daily_streak INTEGER NOT NULL DEFAULT 0,
    last_daily TIMESTAMPTZ,
    profile_status TEXT,
    equipped_title TEXT,
    pet_name TEXT,
    last_broken_streak INTEGER NOT NULL DEFAULT 0,
    recovery_available BOOLEAN NOT NULL DEFAULT FALSE,
    recovery_stored INTEGER NOT NULL DEFAULT 0,
    recovery_expires TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_user_stats_user_id ON user_stats(user_id);
CREATE INDEX IF NOT EXISTS idx_user_stats_streak ON user_stats(current_streak DESC);
CREATE INDEX IF NOT EXISTS idx_user_stats_xp ON user_stats(xp DESC);
CREATE INDEX IF NOT EXISTS idx_user_stats_rating ON user_stats(rating DESC);
`

var migration002Achievements = `
CREATE TABLE IF NOT EXISTS user_achievements (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES user_stats(user_id),
    code VARCHAR(64) NOT NULL,
    earned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, code)
);
CREATE TABLE IF NOT EXISTS user_titles (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES user_stats(user_id),
    code VARCHAR(128) NOT NULL,
    earned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, code)
);
CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id);
CREATE INDEX IF NOT EXISTS idx_user_titles_user ON user_titles(user_id);
`

var migration003Quests = `
CREATE TABLE IF NOT EXISTS daily_quests (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES user_stats(user_id),
    date VARCHAR(10) NOT NULL,
    code VARCHAR(64) NOT NULL,
    progress INTEGER NOT NULL DEFAULT 0,
    target INTEGER NOT NULL DEFAULT 1,
    done BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (user_id, date, code)
);
`

var migration004Weekly = `
CREATE TABLE IF NOT EXISTS weekly_progress (
    week_key VARCHAR(10) PRIMARY KEY,
    total_actions INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS weekly_participants (
    week_key VARCHAR(10) NOT NULL,
    user_id BIGINT NOT NULL,
    PRIMARY KEY (week_key, user_id)
);
`

var migration005Events = `
CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    type VARCHAR(64) NOT NULL,
    meta JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_events_user_created ON events(user_id, created_at DESC);
`

var migration006Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ,
    last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    attempt_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    success BOOLEAN NOT NULL DEFAULT FALSE
);
`

var migration007Prefs = `
CREATE TABLE IF NOT EXISTS user_prefs (
    user_id BIGINT PRIMARY KEY,
    notify_daily BOOLEAN NOT NULL DEFAULT TRUE
);
`
