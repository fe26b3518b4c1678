package services

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// ExpiredPurger is a store that needs its expired entries swept explicitly.
type ExpiredPurger interface {
	PurgeExpired() int
}

// SessionJanitor periodically removes expired sessions from stores that do
// not expire keys on their own.
type SessionJanitor struct {
	store  ExpiredPurger
	cron   *cron.Cron
	logger arbor.ILogger
}

func NewSessionJanitor(store ExpiredPurger, logger arbor.ILogger) *SessionJanitor {
	return &SessionJanitor{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the sweep, e.g. "@every 10m".
func (j *SessionJanitor) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, func() { j.RunNow() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	j.logger.Info().Str("schedule", schedule).Msg("[SessionJanitor] Started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *SessionJanitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("[SessionJanitor] Stopped")
}

// RunNow sweeps once and returns how many sessions were removed.
func (j *SessionJanitor) RunNow() int {
	purged := j.store.PurgeExpired()
	if purged > 0 {
		j.logger.Info().Int("purged", purged).Msg("[SessionJanitor] Expired sessions purged")
	}
	return purged
}
