package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusInactive Status = iota
	StatusRunning
	StatusPaused
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusWon:
		return "won"
	default:
		return "inactive"
	}
}

// SessionState is a read-only view of the session counters and flags.
type SessionState struct {
	LevelID    string
	LevelIndex int
	Moves      int
	Elapsed    time.Duration
	Active     bool
	Paused     bool
	Won        bool
}

// StartOptions controls StartGame.
type StartOptions struct {
	Continue bool // Keep moves and elapsed time
	Paused   bool // Enter the paused state
}

// MoveEvent is emitted after a move is applied to the board.
type MoveEvent struct {
	PieceID int
	From    Piece
	To      Piece
	Moves   int
}

// WinEvent is emitted once per completed level.
type WinEvent struct {
	LevelID string
	Moves   int
	Elapsed time.Duration
	Delta   RecordDelta
}

// Session drives one player through the levels of a catalog.
//
// It is single-threaded: the host delivers one event at a time (key, pointer,
// tick) and each call finishes before the next. Elapsed time only grows through
// AdvanceTime. Collaborators are notified after local state is final and their
// failures are logged, never rolled back.
type Session struct {
	levels []*Level
	deps   Collaborators
	log    *log.Logger

	index  int
	level  *Level
	pieces []Piece
	board  *Board

	moves   int
	elapsed time.Duration
	active  bool
	paused  bool
	won     bool

	onMove  []func(MoveEvent)
	onWin   []func(WinEvent)
	onState []func(SessionState)
}

// NewSession creates an inactive session over the ordered levels.
func NewSession(levels []*Level, deps Collaborators) *Session {
	deps = deps.withDefaults()
	return &Session{
		levels: levels,
		deps:   deps,
		log:    deps.Logger,
	}
}

// OnMove registers a callback for applied moves.
func (s *Session) OnMove(fn func(MoveEvent)) { s.onMove = append(s.onMove, fn) }

// OnWin registers a callback for completed levels.
func (s *Session) OnWin(fn func(WinEvent)) { s.onWin = append(s.onWin, fn) }

// OnStateChange registers a callback for lifecycle transitions.
func (s *Session) OnStateChange(fn func(SessionState)) { s.onState = append(s.onState, fn) }

// StartGame loads the level at index and makes it the active game.
func (s *Session) StartGame(index int, opts StartOptions) error {
	if index < 0 || index >= len(s.levels) {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownLevel, index, len(s.levels))
	}

	level := s.levels[index]
	pieces := level.NewPieces()
	board, err := BoardFor(level, pieces)
	if err != nil {
		s.log.Warn("level layout does not fit board", "level", level.ID, "err", err)
	}

	s.index = index
	s.level = level
	s.pieces = pieces
	s.board = board
	if !opts.Continue {
		s.moves = 0
		s.elapsed = 0
	}
	s.active = true
	s.won = false
	s.paused = opts.Paused

	s.log.Debug("game started", "level", level.ID, "index", index, "paused", s.paused)
	s.emitState()
	return nil
}

// StartLevel starts the level with the given id.
func (s *Session) StartLevel(id string, opts StartOptions) error {
	idx, ok := s.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return s.StartGame(idx, opts)
}

// Restart puts the current level back to its starting layout with fresh
// counters and drops the saved progress for it.
func (s *Session) Restart() error {
	if s.level == nil {
		return fmt.Errorf("%w: no level loaded", ErrStateViolation)
	}
	s.clearSaved()
	return s.StartGame(s.index, StartOptions{})
}

// NextLevel starts the level after the current one.
func (s *Session) NextLevel() error {
	if s.level == nil {
		return fmt.Errorf("%w: no level loaded", ErrStateViolation)
	}
	return s.StartGame(s.index+1, StartOptions{})
}

// Pause stops the clock and blocks moves. No-op unless running.
func (s *Session) Pause() {
	if !s.active || s.won || s.paused {
		return
	}
	s.paused = true
	s.save()
	s.emitState()
}

// Resume restarts the clock. No-op unless paused.
func (s *Session) Resume() {
	if !s.active || s.won || !s.paused {
		return
	}
	s.paused = false
	s.save()
	s.emitState()
}

// TogglePause switches between running and paused.
func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// AdvanceTime adds d to the elapsed time while the game is running.
func (s *Session) AdvanceTime(d time.Duration) {
	if d <= 0 || !s.CanInteract() {
		return
	}
	s.elapsed += d
}

// AttemptMove slides a piece by (dx, dy). Every cell along the way must be
// free; a move along both axes needs one clear L-shaped path.
// Returns false without changing anything when the move is not allowed.
func (s *Session) AttemptMove(id, dx, dy int) bool {
	if !s.CanInteract() || (dx == 0 && dy == 0) {
		return false
	}
	i, ok := s.pieceIndex(id)
	if !ok {
		return false
	}
	if !CanSlide(s.pieces[i], dx, dy, s.board) {
		return false
	}
	s.commit(i, Offset{DX: dx, DY: dy})
	return true
}

// CommitPath applies a path of unit steps as a single move, validating each
// step from the position reached so far. The move count grows by the
// Manhattan length of the net offset.
func (s *Session) CommitPath(id int, steps []Offset) bool {
	if !s.CanInteract() {
		return false
	}
	i, ok := s.pieceIndex(id)
	if !ok {
		return false
	}
	net, ok := CanFollow(s.pieces[i], steps, s.board)
	if !ok || net.IsZero() {
		return false
	}
	s.commit(i, net)
	return true
}

func (s *Session) commit(i int, off Offset) {
	from := s.pieces[i]
	to := from.Shift(off)
	s.board.ApplyMove(from.ID, from.Rect(), to.Rect())
	s.pieces[i] = to
	s.moves += off.Manhattan()

	ev := MoveEvent{PieceID: from.ID, From: from, To: to, Moves: s.moves}
	for _, fn := range s.onMove {
		fn(ev)
	}

	s.checkWin()
	if s.active && !s.won {
		s.save()
	}
}

func (s *Session) checkWin() {
	if s.won || !s.level.IsWin(s.pieces) {
		return
	}
	s.won = true
	s.paused = false

	delta := s.deps.Ledger.RecordCompletion(s.level, s.moves, s.elapsed)
	s.log.Info("level solved", "level", s.level.ID, "moves", s.moves, "elapsed", s.elapsed, "record", delta.Improved())

	s.clearSaved()
	s.deps.Leaderboard.Submit(s.level.ID, s.moves, s.elapsed)
	if delta.Improved() {
		s.deps.ScoreSync.SyncBest(s.level.ID, s.level.BestMoves, s.level.BestTime)
	}

	ev := WinEvent{LevelID: s.level.ID, Moves: s.moves, Elapsed: s.elapsed, Delta: delta}
	for _, fn := range s.onWin {
		fn(ev)
	}
	s.emitState()
}

// Snapshot returns the current progress while a game is active and unwon.
func (s *Session) Snapshot() (SavedSession, bool) {
	if !s.active || s.won {
		return SavedSession{}, false
	}
	return SavedSession{
		LevelID:    s.level.ID,
		LevelIndex: s.index,
		Moves:      s.moves,
		Elapsed:    s.elapsed,
		Paused:     s.paused,
		Pieces:     append([]Piece(nil), s.pieces...),
	}, true
}

// Continue restores a snapshot. An invalid snapshot is removed from
// persistence and leaves the session inactive.
func (s *Session) Continue(snap SavedSession) error {
	idx, board, err := s.checkSnapshot(snap)
	if err != nil {
		s.log.Warn("discarding saved session", "level", snap.LevelID, "err", err)
		s.clearSaved()
		s.deactivate()
		return err
	}
	if idx != snap.LevelIndex {
		s.log.Debug("saved level index moved", "level", snap.LevelID, "stored", snap.LevelIndex, "actual", idx)
	}

	s.index = idx
	s.level = s.levels[idx]
	s.pieces = append([]Piece(nil), snap.Pieces...)
	s.board = board
	s.moves = snap.Moves
	s.elapsed = snap.Elapsed
	s.active = true
	s.won = false
	s.paused = snap.Paused

	s.log.Debug("game continued", "level", s.level.ID, "moves", s.moves, "elapsed", s.elapsed)
	s.emitState()
	return nil
}

// checkSnapshot resolves the snapshot's level and verifies the piece set
// against it. The returned board is built from the snapshot pieces.
func (s *Session) checkSnapshot(snap SavedSession) (int, *Board, error) {
	idx, ok := s.indexOf(snap.LevelID)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrUnknownLevel, snap.LevelID)
	}
	level := s.levels[idx]

	if snap.Moves < 0 || snap.Elapsed < 0 {
		return 0, nil, fmt.Errorf("%w: negative counters", ErrCorruptSave)
	}
	if len(snap.Pieces) != len(level.Pieces) {
		return 0, nil, fmt.Errorf("%w: %d pieces, level %q has %d",
			ErrCorruptSave, len(snap.Pieces), level.ID, len(level.Pieces))
	}

	seen := make(map[int]bool, len(snap.Pieces))
	for _, p := range snap.Pieces {
		if p.ID < 0 {
			return 0, nil, fmt.Errorf("%w: negative piece id %d", ErrCorruptSave, p.ID)
		}
		placement, ok := level.Placement(p.ID)
		if !ok || seen[p.ID] {
			return 0, nil, fmt.Errorf("%w: unexpected piece %d", ErrCorruptSave, p.ID)
		}
		if placement.Type != p.Type {
			return 0, nil, fmt.Errorf("%w: piece %d is %s, level has %s",
				ErrCorruptSave, p.ID, p.Type, placement.Type)
		}
		seen[p.ID] = true
	}

	board, err := BoardFor(level, snap.Pieces)
	if err != nil {
		return 0, nil, errors.Join(ErrCorruptSave, err)
	}
	if level.IsWin(snap.Pieces) {
		return 0, nil, fmt.Errorf("%w: snapshot is already solved", ErrCorruptSave)
	}
	return idx, board, nil
}

// HasSavedGame reports whether persistence holds a snapshot that Continue
// would accept. Unusable snapshots are cleared.
func (s *Session) HasSavedGame() bool {
	snap, ok := s.loadSaved()
	if !ok {
		return false
	}
	if _, _, err := s.checkSnapshot(snap); err != nil {
		s.log.Warn("discarding saved session", "level", snap.LevelID, "err", err)
		s.clearSaved()
		return false
	}
	return true
}

// ContinueSaved loads the persisted snapshot and continues it.
func (s *Session) ContinueSaved() error {
	snap, ok := s.loadSaved()
	if !ok {
		return ErrNoSavedGame
	}
	return s.Continue(snap)
}

func (s *Session) loadSaved() (SavedSession, bool) {
	snap, ok, err := s.deps.Persistence.Load()
	if err != nil {
		s.log.Warn("discarding unreadable saved session", "err", err)
		s.clearSaved()
		return SavedSession{}, false
	}
	return snap, ok
}

// Reset ends the current game and drops the saved snapshot.
func (s *Session) Reset() {
	s.clearSaved()
	s.deactivate()
}

func (s *Session) deactivate() {
	wasActive := s.active
	s.level = nil
	s.pieces = nil
	s.board = nil
	s.index = 0
	s.moves = 0
	s.elapsed = 0
	s.active = false
	s.paused = false
	s.won = false
	if wasActive {
		s.emitState()
	}
}

func (s *Session) save() {
	snap, ok := s.Snapshot()
	if !ok {
		return
	}
	if err := s.deps.Persistence.Save(snap); err != nil {
		s.log.Error("save session", "level", snap.LevelID, "err", err)
	}
}

func (s *Session) clearSaved() {
	if err := s.deps.Persistence.Clear(); err != nil {
		s.log.Error("clear saved session", "err", err)
	}
}

func (s *Session) emitState() {
	st := s.State()
	for _, fn := range s.onState {
		fn(st)
	}
}

func (s *Session) indexOf(id string) (int, bool) {
	for i, l := range s.levels {
		if l.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) pieceIndex(id int) (int, bool) {
	for i := range s.pieces {
		if s.pieces[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// State returns the current counters and flags.
func (s *Session) State() SessionState {
	st := SessionState{
		LevelIndex: s.index,
		Moves:      s.moves,
		Elapsed:    s.elapsed,
		Active:     s.active,
		Paused:     s.paused,
		Won:        s.won,
	}
	if s.level != nil {
		st.LevelID = s.level.ID
	}
	return st
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	switch {
	case !s.active:
		return StatusInactive
	case s.won:
		return StatusWon
	case s.paused:
		return StatusPaused
	default:
		return StatusRunning
	}
}

// CanInteract reports whether moves are accepted right now.
func (s *Session) CanInteract() bool {
	return s.active && !s.paused && !s.won
}

// Level returns the current level, or nil when none is loaded.
func (s *Session) Level() *Level { return s.level }

// LevelIndex returns the catalog index of the current level.
func (s *Session) LevelIndex() int { return s.index }

// Levels returns the catalog the session was created with.
func (s *Session) Levels() []*Level { return s.levels }

// Pieces returns a copy of the live pieces.
func (s *Session) Pieces() []Piece {
	return append([]Piece(nil), s.pieces...)
}

// Piece returns the live piece with the given id.
func (s *Session) Piece(id int) (Piece, bool) {
	i, ok := s.pieceIndex(id)
	if !ok {
		return Piece{}, false
	}
	return s.pieces[i], true
}

// Board returns the live occupancy grid. Callers must not modify it.
func (s *Session) Board() *Board { return s.board }

// PieceAt returns the piece covering (x, y).
func (s *Session) PieceAt(x, y int) (Piece, bool) {
	if s.board == nil {
		return Piece{}, false
	}
	id, ok := s.board.Occupant(x, y)
	if !ok {
		return Piece{}, false
	}
	return s.Piece(id)
}
