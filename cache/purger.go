package cache

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Purger periodically removes expired entries from a CacheProvider.
type Purger struct {
	cron     *cron.Cron
	provider CacheProvider
	log      zerolog.Logger
}

// NewPurger schedules purging of expired entries.
// The schedule is a cron spec, e.g. "@every 1m" or "*/5 * * * *".
// The purger does not run until Start is called.
func NewPurger(provider CacheProvider, schedule string, log zerolog.Logger) (*Purger, error) {
	p := &Purger{
		cron:     cron.New(),
		provider: provider,
		log:      log,
	}
	if _, err := p.cron.AddFunc(schedule, p.Run); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Purger) Start() {
	p.cron.Start()
	p.log.Info().Msg("Started purging expired cache entries")
}

// Stop stops the schedule and waits for a running purge to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
}

// Run purges expired entries once.
func (p *Purger) Run() {
	n, err := p.provider.PurgeExpired(time.Now())
	if err != nil {
		p.log.Error().Err(err).Msg("Could not purge expired entries")
		return
	}
	p.log.Debug().Int("purged", n).Msg("Purged expired entries")
}
