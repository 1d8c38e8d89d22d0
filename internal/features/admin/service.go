// Package admin — service.go содержит логику аутентификации, управления
// сессиями и пошаговых админ-действий.
package admin

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/features/journal"
	"bratva.chat/telegram-bot/internal/features/profile"
)

// Пауза между сообщениями рассылки, чтобы не упереться в лимиты Telegram.
const broadcastPause = 50 * time.Millisecond

// Service управляет админ-панелью.
type Service struct {
	repo     *Repository
	profiles *profile.Repository
	journal  *journal.Repository
	db       *pgxpool.Pool
	cfg      *config.Config
	states   map[int64]*State // Состояния диалогов (in-memory)
	statesMu sync.RWMutex
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, profiles *profile.Repository, j *journal.Repository, db *pgxpool.Pool, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		journal:  j,
		db:       db,
		cfg:      cfg,
		states:   make(map[int64]*State),
	}
}

// IsAdmin проверяет пользователя по списку ADMIN_IDS.
func (s *Service) IsAdmin(userID int64) bool {
	for _, id := range s.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VerifyPassword проверяет пароль администратора (Argon2id).
// Защита от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.GetRecentAttempts(ctx, userID, 1*time.Hour)
	if err != nil {
		return err
	}
	if attempts >= 3 {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Warn("Не удалось записать попытку входа")
	}
	if !match {
		return common.ErrWrongPassword
	}

	session := &Session{
		UserID:       userID,
		SessionToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	return err == nil && session != nil
}

// Logout деактивирует сессию администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	s.ClearState(userID)
	return s.repo.DeactivateSession(ctx, userID)
}

// GetState возвращает текущее состояние диалога.
func (s *Service) GetState(userID int64) *State {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string, data interface{}) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &State{
		State:     stateName,
		Data:      data,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// Broadcast рассылает текст всем известным пользователям через send.
// Возвращает количество успешных доставок; недоставка — не ошибка.
func (s *Service) Broadcast(ctx context.Context, text string, send func(userID int64, text string) error) (int, error) {
	ids, err := s.profiles.AllUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		if err := send(id, text); err != nil {
			log.WithError(err).WithField("user_id", id).Debug("Рассылка: сообщение не доставлено")
			continue
		}
		sent++
		time.Sleep(broadcastPause)
	}
	return sent, nil
}

// GrantCoins начисляет монеты пользователю (может быть отрицательным —
// штраф, но не ниже нуля на балансе).
func (s *Service) GrantCoins(ctx context.Context, adminID, userID, amount int64) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := s.profiles.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoRecord) {
			return 0, common.ErrUnknownUser
		}
		return 0, err
	}
	u.Coins += amount
	if u.Coins < 0 {
		u.Coins = 0
	}
	if err := s.profiles.Save(ctx, tx, u); err != nil {
		return 0, err
	}
	if err := s.journal.Record(ctx, tx, userID, "admin_grant", map[string]any{
		"admin_id": adminID, "amount": amount,
	}); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return u.Coins, nil
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}
