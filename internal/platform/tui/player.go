package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/levels"
	"github.com/vovakirdan/tui-klotski/internal/storage"
)

// PlayerConfig describes one player's session.
type PlayerConfig struct {
	Profile     string
	LevelsDir   string
	QueueSize   int
	Game        klotski.Options
	StartPaused bool
	Logger      *log.Logger
}

// Player bundles everything one player needs: the level catalog, the engine
// session bound to the profile's save slot and a background recorder.
type Player struct {
	Catalog *levels.Catalog
	Session *engine.Session
	Game    *klotski.Game
	Profile string
	Store   *storage.Store

	slot        engine.Persistence
	recorder    *storage.Recorder
	startPaused bool
	log         *log.Logger
}

// NewPlayer loads the levels and wires a session to store.
// A nil store gives a session that keeps nothing between runs.
func NewPlayer(store *storage.Store, cfg PlayerConfig) (*Player, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Profile == "" {
		cfg.Profile = storage.DefaultProfile
	}
	logger = logger.With("profile", cfg.Profile)

	catalog, err := levels.Load(cfg.LevelsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}

	ledger := engine.NewLedger()
	deps := engine.Collaborators{
		Ledger: ledger,
		Logger: logger.WithPrefix("session"),
	}

	p := &Player{
		Catalog:     catalog,
		Profile:     cfg.Profile,
		Store:       store,
		startPaused: cfg.StartPaused,
		log:         logger,
	}

	if store != nil {
		if err := store.SeedLedger(cfg.Profile, ledger, catalog.Levels()); err != nil {
			logger.Warn("Could not load records", "err", err)
		}
		p.recorder = storage.NewRecorder(store, cfg.Profile, cfg.QueueSize, logger.WithPrefix("recorder"))
		p.slot = store.Slot(cfg.Profile)
		deps.Persistence = p.slot
		deps.ScoreSync = p.recorder
		deps.Leaderboard = p.recorder
	}

	p.Session = engine.NewSession(catalog.Levels(), deps)
	p.Game = klotski.New(p.Session, cfg.Game)
	return p, nil
}

// Start begins the level at index, or continues the saved game when index is negative.
func (p *Player) Start(index int) error {
	if index < 0 {
		if err := p.Session.ContinueSaved(); err != nil {
			return err
		}
		if p.startPaused {
			p.Session.Pause()
		}
		p.log.Info("Continuing saved game", "level", p.Session.State().LevelID)
		return nil
	}

	if err := p.Session.StartGame(index, engine.StartOptions{Paused: p.startPaused}); err != nil {
		return err
	}
	p.log.Info("Starting level", "level", p.Session.State().LevelID)
	return nil
}

// StartByID begins the level with the given id.
func (p *Player) StartByID(id string) error {
	i, ok := p.Catalog.Index(id)
	if !ok {
		return fmt.Errorf("level %q: %w", id, engine.ErrUnknownLevel)
	}
	return p.Start(i)
}

// Leave pauses a running level, which saves it for Continue.
func (p *Player) Leave() {
	p.Session.Pause()
}

// SavedGame returns the snapshot Continue would resume.
func (p *Player) SavedGame() (engine.SavedSession, bool) {
	if p.slot == nil || !p.Session.HasSavedGame() {
		return engine.SavedSession{}, false
	}
	snap, ok, err := p.slot.Load()
	if err != nil {
		return engine.SavedSession{}, false
	}
	return snap, ok
}

// Close saves any running level and flushes pending records.
func (p *Player) Close() {
	p.Leave()
	if p.recorder != nil {
		p.recorder.Close()
	}
}
