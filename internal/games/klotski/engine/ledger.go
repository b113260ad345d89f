package engine

import "time"

// Record is a best result for one level.
type Record struct {
	Moves int
	Time  time.Duration
}

// RecordDelta tells which metrics a completion improved.
type RecordDelta struct {
	First bool // First completion of the level
	Moves bool // New best move count
	Time  bool // New best time
}

// Improved reports whether any metric changed.
func (d RecordDelta) Improved() bool {
	return d.First || d.Moves || d.Time
}

// Ledger keeps best moves and best time per level. It only compares and
// mutates Level records in memory; pushing them anywhere is the caller's job.
type Ledger struct{}

// NewLedger creates a ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordCompletion compares a finished run against the level's bests.
// Moves and time are judged independently.
func (lg *Ledger) RecordCompletion(l *Level, moves int, elapsed time.Duration) RecordDelta {
	if !l.Solved {
		l.Solved = true
		l.BestMoves = moves
		l.BestTime = elapsed
		return RecordDelta{First: true, Moves: true, Time: true}
	}

	var d RecordDelta
	if moves < l.BestMoves {
		l.BestMoves = moves
		d.Moves = true
	}
	if elapsed < l.BestTime {
		l.BestTime = elapsed
		d.Time = true
	}
	return d
}

// Best returns the level's record, if it has one.
func (lg *Ledger) Best(l *Level) (Record, bool) {
	if !l.Solved {
		return Record{}, false
	}
	return Record{Moves: l.BestMoves, Time: l.BestTime}, true
}

// Seed applies a stored record, keeping the better value per metric.
func (lg *Ledger) Seed(l *Level, rec Record) {
	if rec.Moves <= 0 {
		return
	}
	if !l.Solved {
		l.Solved = true
		l.BestMoves = rec.Moves
		l.BestTime = rec.Time
		return
	}
	if rec.Moves < l.BestMoves {
		l.BestMoves = rec.Moves
	}
	if rec.Time < l.BestTime {
		l.BestTime = rec.Time
	}
}
