// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасный свип обрывов серий,
// вечернее напоминание и недельный отчёт в понедельник.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/daily"
	"bratva.chat/telegram-bot/internal/features/notify"
	"bratva.chat/telegram-bot/internal/features/weekly"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	dailyService  *daily.Service
	weeklyService *weekly.Service
	notifyService *notify.Service
	clock         *common.Clock

	notifyBreak func(userID int64, streak int)
	sendUser    func(userID int64, text string) error
	sendChat    func(text string)
}

// NewScheduler создаёт планировщик задач в таймзоне бота.
func NewScheduler(
	dailyService *daily.Service,
	weeklyService *weekly.Service,
	notifyService *notify.Service,
	clock *common.Clock,
	notifyBreak func(userID int64, streak int),
	sendUser func(userID int64, text string) error,
	sendChat func(text string),
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(clock.Location())),
		dailyService:  dailyService,
		weeklyService: weeklyService,
		notifyService: notifyService,
		clock:         clock,
		notifyBreak:   notifyBreak,
		sendUser:      sendUser,
		sendChat:      sendChat,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ежечасный свип: обнуляем серии, пережившие льготное окно без действия
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Свип обрывов серий")
		swept, err := s.dailyService.SweepBroken(ctx, s.notifyBreak)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка свипа")
			return
		}
		if swept > 0 {
			log.WithField("swept", swept).Info("[CRON] Серии обнулены")
		}
	})

	// Вечернее напоминание тем, кто ещё не сделал ритуал
	s.cron.AddFunc("0 20 * * *", func() {
		log.Debug("[CRON] Напоминания о ритуале")
		sent, err := s.notifyService.RemindPending(ctx, s.sendUser)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка напоминаний")
			return
		}
		if sent > 0 {
			log.WithField("sent", sent).Info("[CRON] Напоминания отправлены")
		}
	})

	// Итог недели — в понедельник в полночь (закрылась предыдущая неделя)
	s.cron.AddFunc("0 0 * * 1", func() {
		log.Info("[CRON] Недельный отчёт")
		st, err := s.weeklyService.CurrentStatus(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка недельного отчёта")
			return
		}
		s.sendChat("Новая неделя началась! " + weekly.FormatStatus(st))
	})

	s.cron.Start()
	log.WithField("tz", s.clock.Location().String()).Info("Планировщик задач запущен")
}

// Stop останавливает планировщик и дожидается текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
