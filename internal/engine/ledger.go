package engine

import "time"

// LapRecord is one row of the ledger.
// Raw is the lap's own duration, Total the stopwatch time at the end of the lap.
type LapRecord struct {
	Raw   time.Duration
	Total time.Duration
	Time  string
}

// Mark flags the fastest and slowest completed laps.
type Mark int

const (
	MarkNone Mark = iota
	MarkFastest
	MarkSlowest
)

// Ledger is the lap stack: index 0 is the active lap, then completed laps newest first.
type Ledger struct {
	laps []LapRecord
}

// Len returns the number of rows, active lap included.
func (l *Ledger) Len() int { return len(l.laps) }

// Empty reports whether no lap has been opened yet.
func (l *Ledger) Empty() bool { return len(l.laps) == 0 }

// Laps returns a copy of the rows.
func (l *Ledger) Laps() []LapRecord {
	out := make([]LapRecord, len(l.laps))
	copy(out, l.laps)
	return out
}

// Active returns a pointer to the accruing lap, or nil on an empty ledger.
func (l *Ledger) Active() *LapRecord {
	if len(l.laps) == 0 {
		return nil
	}
	return &l.laps[0]
}

// PreviousTotal is the cumulative time at the end of the newest completed lap.
func (l *Ledger) PreviousTotal() time.Duration {
	if len(l.laps) < 2 {
		return 0
	}
	return l.laps[1].Total
}

// Push opens a new active lap in front of the others.
func (l *Ledger) Push(rec LapRecord) {
	l.laps = append([]LapRecord{rec}, l.laps...)
}

// Clear drops every row.
func (l *Ledger) Clear() {
	l.laps = nil
}

// Marks computes the fastest/slowest marker for every row of laps.
// Only completed laps (index >= 1) are considered. With fewer than two of
// them, or when they are all equal, nothing is marked. Ties at an extreme
// mark the first lap found in storage order.
func Marks(laps []LapRecord) []Mark {
	marks := make([]Mark, len(laps))
	fastest, slowest, ok := FastestSlowest(laps)
	if ok {
		marks[fastest] = MarkFastest
		marks[slowest] = MarkSlowest
	}
	return marks
}

// FastestSlowest returns the ledger indices of the fastest and slowest completed laps.
func FastestSlowest(laps []LapRecord) (fastest, slowest int, ok bool) {
	if len(laps) < 3 {
		return 0, 0, false
	}
	fastest, slowest = 1, 1
	for i := 2; i < len(laps); i++ {
		if laps[i].Raw < laps[fastest].Raw {
			fastest = i
		}
		if laps[i].Raw > laps[slowest].Raw {
			slowest = i
		}
	}
	if laps[fastest].Raw == laps[slowest].Raw {
		return 0, 0, false
	}
	return fastest, slowest, true
}
