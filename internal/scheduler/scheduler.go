package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"interview-chat/internal/session"
)

// Sweeper periodically evicts idle sessions from the store.
type Sweeper struct {
	cron        *cron.Cron
	store       *session.Store
	interval    time.Duration
	idleTimeout time.Duration
}

// New создает новый планировщик очистки сессий
func New(store *session.Store, interval, idleTimeout time.Duration) *Sweeper {
	return &Sweeper{
		// Recover keeps a misbehaving sweep from killing the background task.
		cron:        cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		store:       store,
		interval:    interval,
		idleTimeout: idleTimeout,
	}
}

// Start запускает планировщик
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.sweep); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	s.cron.Start()
	log.Printf("📅 Session sweep scheduled every %s (idle timeout %s)", s.interval, s.idleTimeout)
	return nil
}

func (s *Sweeper) sweep() {
	if n := s.store.EvictIdle(time.Now(), s.idleTimeout); n > 0 {
		log.Printf("🧹 Evicted %d idle session(s), %d still active", n, s.store.Size())
	}
}

// Stop останавливает планировщик
func (s *Sweeper) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("📅 Session sweep stopped")
}

// IsRunning проверяет, запущен ли планировщик
func (s *Sweeper) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
