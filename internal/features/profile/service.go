// Package profile — service.go содержит бизнес-логику работы с профилем.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
)

// Ограничения на пользовательский ввод.
const (
	maxStatusLen  = 60
	maxPetNameLen = 30
)

// Service управляет профилями пользователей.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт новый сервис профилей.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// EnsureUser лениво создаёт запись пользователя и обновляет username.
func (s *Service) EnsureUser(ctx context.Context, userID int64, username string) error {
	return s.repo.Ensure(ctx, nil, userID, username)
}

// GetProfile возвращает запись пользователя.
// Отсутствие записи — не ошибка: возвращаются значения по умолчанию,
// чтобы профиль и статистика работали до первого действия.
func (s *Service) GetProfile(ctx context.Context, userID int64, username string) (*UserStats, error) {
	u, err := s.repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoRecord) {
			return &UserStats{
				UserID:   userID,
				Username: username,
				Rating:   s.cfg.RatingInitial,
			}, nil
		}
		return nil, err
	}
	return u, nil
}

// SetStatus обновляет текст статуса профиля (обрезается до 60 символов).
func (s *Service) SetStatus(ctx context.Context, userID int64, username, status string) error {
	if err := s.EnsureUser(ctx, userID, username); err != nil {
		return err
	}
	status = strings.TrimSpace(status)
	runes := []rune(status)
	if len(runes) > maxStatusLen {
		status = string(runes[:maxStatusLen])
	}
	return s.repo.SetStatus(ctx, userID, status)
}

// SetPetName устанавливает имя питомца.
func (s *Service) SetPetName(ctx context.Context, userID int64, username, petName string) error {
	petName = strings.TrimSpace(petName)
	if petName == "" || len([]rune(petName)) > maxPetNameLen {
		return fmt.Errorf("имя питомца должно быть от 1 до %d символов", maxPetNameLen)
	}
	if err := s.EnsureUser(ctx, userID, username); err != nil {
		return err
	}
	return s.repo.SetPetName(ctx, userID, petName)
}

// TopByStreak возвращает лидеров по текущей серии.
func (s *Service) TopByStreak(ctx context.Context, limit int) ([]*UserStats, error) {
	return s.repo.TopByStreak(ctx, limit)
}

// TopByXP возвращает лидеров по опыту.
func (s *Service) TopByXP(ctx context.Context, limit int) ([]*UserStats, error) {
	return s.repo.TopByXP(ctx, limit)
}

// TopByRating возвращает лидеров по рейтингу.
func (s *Service) TopByRating(ctx context.Context, limit int) ([]*UserStats, error) {
	return s.repo.TopByRating(ctx, limit)
}

// AllUserIDs возвращает всех известных пользователей (для рассылки).
func (s *Service) AllUserIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.repo.AllUserIDs(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка выборки пользователей для рассылки")
		return nil, err
	}
	return ids, nil
}
