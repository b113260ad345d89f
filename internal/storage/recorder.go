package storage

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

// DefaultQueueSize is the recorder backlog used when none is configured.
const DefaultQueueSize = 64

type recordJob interface{ isRecordJob() }

type syncBestJob struct {
	levelID string
	moves   int
	best    time.Duration
}

type submitJob struct {
	levelID string
	moves   int
	elapsed time.Duration
}

func (syncBestJob) isRecordJob() {}
func (submitJob) isRecordJob()   {}

// Recorder writes best records and leaderboard runs of one profile from a
// background goroutine. SyncBest and Submit never block: when the queue is
// full the job is dropped and logged.
type Recorder struct {
	store   *Store
	profile string
	log     *log.Logger

	mu     sync.Mutex
	closed bool
	jobs   chan recordJob
	wg     sync.WaitGroup
}

// NewRecorder starts a recorder for profile. A nil logger discards output.
func NewRecorder(store *Store, profile string, queueSize int, logger *log.Logger) *Recorder {
	if profile == "" {
		profile = DefaultProfile
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Recorder{
		store:   store,
		profile: profile,
		log:     logger.With("profile", profile),
		jobs:    make(chan recordJob, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// SyncBest implements engine.ScoreSync.
func (r *Recorder) SyncBest(levelID string, bestMoves int, bestTime time.Duration) {
	r.enqueue(syncBestJob{levelID: levelID, moves: bestMoves, best: bestTime})
}

// Submit implements engine.Leaderboard.
func (r *Recorder) Submit(levelID string, moves int, elapsed time.Duration) {
	r.enqueue(submitJob{levelID: levelID, moves: moves, elapsed: elapsed})
}

func (r *Recorder) enqueue(job recordJob) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.log.Warn("recorder closed, dropping job", "job", job)
		return
	}
	select {
	case r.jobs <- job:
	default:
		r.log.Warn("recorder queue full, dropping job", "job", job)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for job := range r.jobs {
		r.handle(job)
	}
}

func (r *Recorder) handle(job recordJob) {
	switch j := job.(type) {
	case syncBestJob:
		if err := r.store.UpsertBest(r.profile, j.levelID, j.moves, j.best); err != nil {
			r.log.Error("best record sync failed", "level", j.levelID, "err", err)
			return
		}
		r.log.Debug("best record synced", "level", j.levelID, "moves", j.moves, "time", j.best)
	case submitJob:
		if _, err := r.store.SaveScore(r.profile, j.levelID, j.moves, j.elapsed); err != nil {
			r.log.Error("leaderboard submit failed", "level", j.levelID, "err", err)
			return
		}
		r.log.Debug("run submitted", "level", j.levelID, "moves", j.moves, "elapsed", j.elapsed)
	}
}

// Close stops accepting jobs and waits until the queued ones are written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.jobs)
	r.mu.Unlock()

	r.wg.Wait()
}

var (
	_ engine.ScoreSync   = (*Recorder)(nil)
	_ engine.Leaderboard = (*Recorder)(nil)
)
