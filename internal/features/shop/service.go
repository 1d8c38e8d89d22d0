// Package shop — service.go содержит бизнес-логику покупки.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/achievements"
	"bratva.chat/telegram-bot/internal/features/journal"
	"bratva.chat/telegram-bot/internal/features/profile"
)

// Service управляет покупками в магазине.
type Service struct {
	db      *pgxpool.Pool
	users   *profile.Repository
	titles  *achievements.Repository
	journal *journal.Repository
}

// NewService создаёт новый сервис магазина.
func NewService(db *pgxpool.Pool, users *profile.Repository, titles *achievements.Repository, j *journal.Repository) *Service {
	return &Service{db: db, users: users, titles: titles, journal: j}
}

// Buy покупает товар: списание монет и выдача — одна транзакция.
// Титул попадает в леджер под своим именем, расходник — под кодом
// с префиксом ITEM: (применения пока нет, только хранение).
func (s *Service) Buy(ctx context.Context, userID int64, code string) (Item, error) {
	item, ok := ItemByCode(code)
	if !ok {
		return Item{}, common.ErrUnknownItem
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoRecord) {
			return Item{}, common.ErrUnknownUser
		}
		return Item{}, err
	}
	if u.Coins < item.Cost {
		return Item{}, common.ErrInsufficientCoins
	}

	u.Coins -= item.Cost
	if err := s.users.Save(ctx, tx, u); err != nil {
		return Item{}, err
	}

	entry := item.Name
	if item.Kind == KindConsumable {
		entry = achievements.ItemPrefix + item.Code
	}
	if err := s.titles.GrantTitle(ctx, tx, userID, entry); err != nil {
		return Item{}, err
	}
	if err := s.journal.Record(ctx, tx, userID, "buy", map[string]any{"code": item.Code, "cost": item.Cost}); err != nil {
		return Item{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Item{}, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	log.WithFields(log.Fields{"user_id": userID, "code": item.Code}).Info("Покупка совершена")
	return item, nil
}
