package maintenance

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/alphalearn/alphalearn/internal/config"
	"github.com/alphalearn/alphalearn/internal/database"
)

// DefaultSchedule runs upkeep nightly when nobody is studying.
const DefaultSchedule = "0 3 * * *"

// Manager schedules background upkeep of the SQLite file: planner
// stat refreshes on every run, plus an opt-in VACUUM.
type Manager struct {
	db      *database.DB
	loader  *config.Loader
	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	running bool
}

// New creates a maintenance manager. Schedule and vacuum behavior come
// from the settings table (maintenance.schedule, maintenance.vacuum).
func New(db *database.DB, loader *config.Loader) *Manager {
	return &Manager{
		db:     db,
		loader: loader,
		cron:   cron.New(),
	}
}

// Start begins the scheduler.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	schedule := m.loader.String("maintenance.schedule", DefaultSchedule)
	entryID, err := m.cron.AddFunc(schedule, m.run)
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	m.entryID = entryID

	m.cron.Start()
	m.running = true

	log.Info().Str("schedule", schedule).Msg("Maintenance manager started")
	return nil
}

// Stop halts the scheduler and waits for any in-flight run.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	ctx := m.cron.Stop()
	<-ctx.Done()

	m.running = false
	log.Info().Msg("Maintenance manager stopped")
}

func (m *Manager) run() {
	log.Debug().Msg("Running scheduled database maintenance")

	if err := m.db.Optimize(); err != nil {
		log.Error().Err(err).Msg("Failed to optimize database")
	}

	if m.loader.Bool("maintenance.vacuum", false) {
		if err := m.db.Vacuum(); err != nil {
			log.Error().Err(err).Msg("Failed to vacuum database")
		}
	}
}
