package jobs

import (
	"context"
	"time"
)

// AppointmentMarker интерфейс репозитория для пометки пропущенных записей
type AppointmentMarker interface {
	MarkNoShows(ctx context.Context, now time.Time, graceMinutes int) (int64, error)
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NoShowSweeper периодически помечает записи, по которым водитель так и не
// отметился на воротах, статусом no_show. Запись считается пропущенной, когда
// её окно плюс глобальный допуск на опоздание уже прошли.
type NoShowSweeper struct {
	appointmentRepo AppointmentMarker
	timeProvider    TimeProvider
	graceMinutes    int
	logger          Logger
}

// NewNoShowSweeper создает новый экземпляр свипера
func NewNoShowSweeper(appointmentRepo AppointmentMarker, timeProvider TimeProvider, graceMinutes int, logger Logger) *NoShowSweeper {
	return &NoShowSweeper{
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		graceMinutes:    graceMinutes,
		logger:          logger,
	}
}

// Run выполняет один проход свипера
func (s *NoShowSweeper) Run(ctx context.Context) {
	now := s.timeProvider.Now()

	marked, err := s.appointmentRepo.MarkNoShows(ctx, now, s.graceMinutes)
	if err != nil {
		s.logger.Error("NoShowSweeper: failed to mark no-shows: %v", err)
		return
	}

	if marked > 0 {
		s.logger.Info("NoShowSweeper: marked %d appointments as no_show", marked)
	}
}
