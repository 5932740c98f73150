package worker

import "time"

// timeManager allocates a soft (optimum) and hard (maximum) search budget
// from a Search command's remaining clock and increment. Both are checked
// by the worker between iterative-deepening depths only.
type timeManager struct {
	optimum time.Duration
	maximum time.Duration
	start   time.Time
}

func newTimeManager(cmd Search) *timeManager {
	tm := &timeManager{start: time.Now()}

	switch cmd.Mode {
	case SearchMoveTime:
		tm.optimum = cmd.MoveTime
		tm.maximum = cmd.MoveTime
		return tm
	case SearchInfinite:
		tm.optimum = 24 * time.Hour
		tm.maximum = 24 * time.Hour
		return tm
	}

	us := cmd.SideToMove
	timeLeft := cmd.TimeLeft[us]
	inc := cmd.Increment[us]

	// Budget: my_time/40 + my_increment.
	tm.optimum = timeLeft/40 + inc

	maxFromOptimum := tm.optimum * 5
	maxFromRemaining := timeLeft * 8 / 10
	if maxFromOptimum < maxFromRemaining {
		tm.maximum = maxFromOptimum
	} else {
		tm.maximum = maxFromRemaining
	}
	safety := timeLeft * 95 / 100
	if tm.maximum > safety {
		tm.maximum = safety
	}

	if tm.optimum < 10*time.Millisecond {
		tm.optimum = 10 * time.Millisecond
	}
	if tm.maximum < 50*time.Millisecond {
		tm.maximum = 50 * time.Millisecond
	}
	return tm
}

func (tm *timeManager) elapsed() time.Duration { return time.Since(tm.start) }
func (tm *timeManager) pastOptimum() bool      { return tm.elapsed() >= tm.optimum }
func (tm *timeManager) shouldStop() bool       { return tm.elapsed() >= tm.maximum }
