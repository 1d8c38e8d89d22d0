// Package achievements — service.go содержит бизнес-логику разблокировок
// и управления титулами.
package achievements

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/db/postgres"
	"bratva.chat/telegram-bot/internal/features/journal"
	"bratva.chat/telegram-bot/internal/features/profile"
)

// Префикс, под которым в леджере титулов хранятся купленные предметы.
const ItemPrefix = "ITEM:"

// Service управляет достижениями и титулами.
type Service struct {
	repo     *Repository
	profiles *profile.Repository
	journal  *journal.Repository
}

// NewService создаёт новый сервис достижений.
func NewService(repo *Repository, profiles *profile.Repository, j *journal.Repository) *Service {
	return &Service{repo: repo, profiles: profiles, journal: j}
}

// CheckUnlocks проверяет пороги после действия и идемпотентно выдаёт
// достижения и связанные титулы. Вызывается внутри транзакции действия;
// уведомления отправляет вызывающий ПОСЛЕ фиксации.
//
// Пороги сравниваются строго (==): счётчики растут по +1, поэтому каждый
// порог виден ровно один раз. Восстановление серии может перескочить
// порог — тогда достижение не выдаётся (осознанное поведение оригинала).
func (s *Service) CheckUnlocks(ctx context.Context, q postgres.Querier, userID int64, streak, total int) ([]Unlock, error) {
	var unlocks []Unlock

	codes := make([]string, 0, 2)
	if code, ok := StreakCode(streak); ok {
		codes = append(codes, code)
	}
	if code, ok := TotalCode(total); ok {
		codes = append(codes, code)
	}

	for _, code := range codes {
		first, err := s.repo.Award(ctx, q, userID, code)
		if err != nil {
			return nil, err
		}
		if !first {
			continue
		}
		u := Unlock{Code: code, Message: Descriptions[code]}
		if title, ok := TitleByCode[code]; ok {
			if err := s.repo.GrantTitle(ctx, q, userID, title); err != nil {
				return nil, err
			}
			u.Title = title
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, nil
}

// ListAchievements возвращает достижения пользователя.
func (s *Service) ListAchievements(ctx context.Context, userID int64) ([]Earned, error) {
	return s.repo.ListAchievements(ctx, userID)
}

// ListTitles возвращает титулы пользователя без купленных предметов.
func (s *Service) ListTitles(ctx context.Context, userID int64) ([]string, error) {
	all, err := s.repo.ListTitles(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(all))
	for _, t := range all {
		if !strings.HasPrefix(t, ItemPrefix) {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

// Equip надевает титул: проверяет владение по леджеру и пишет его
// в отдельное поле профиля equipped_title.
func (s *Service) Equip(ctx context.Context, userID int64, title string) error {
	owned, err := s.repo.HasTitle(ctx, userID, title)
	if err != nil {
		return err
	}
	if !owned {
		return common.ErrTitleNotOwned
	}
	if err := s.profiles.SetEquippedTitle(ctx, userID, &title); err != nil {
		return err
	}
	if err := s.journal.Record(ctx, nil, userID, "equip_title", map[string]any{"title": title}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать событие equip_title")
	}
	return nil
}
