// Package worker implements the controller/worker harness: a single
// search worker goroutine driven over command and event channels, with
// cooperative atomic cancellation. The transposition table is owned
// exclusively by the worker goroutine.
package worker

import (
	"time"

	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
)

// Command is sent from the controller to the worker over a single channel.
type Command interface {
	isCommand()
}

// SetPosition replaces the worker's current position. Sending it while a
// search is running stops the in-flight search first and is acted on once
// the search loop unwinds, same as a new Search arriving mid-search.
type SetPosition struct {
	Pos position.Position
}

func (SetPosition) isCommand() {}

// SearchMode selects which of the three go-command variants a Search
// command requests.
type SearchMode int

const (
	// SearchInfinite runs until Stop is received.
	SearchInfinite SearchMode = iota
	// SearchMoveTime runs for a fixed duration.
	SearchMoveTime
	// SearchTimeLeft allocates time from the remaining clock and increment.
	SearchTimeLeft
)

// Search requests iterative-deepening search from the worker's current
// position under the given mode and limits.
type Search struct {
	Mode SearchMode

	MoveTime time.Duration

	// TimeLeft and Increment are indexed by bitboard.Color (White=0,
	// Black=1), matching how "wtime"/"btime" arrive over UCI.
	TimeLeft   [2]time.Duration
	Increment  [2]time.Duration
	MovesToGo  int
	SideToMove bitboard.Color

	Depth int    // 0 = unbounded
	Nodes uint64 // 0 = unbounded

	Ply int // game ply, set from UCI "position" for informational/future use
}

func (Search) isCommand() {}

// Stop requests the worker halt its current search and emit BestMove from
// the deepest completed iteration. A no-op if no search is running.
type Stop struct{}

func (Stop) isCommand() {}

// Quit requests the worker goroutine exit. No further commands are read.
type Quit struct{}

func (Quit) isCommand() {}

// Event is sent from the worker to the controller over a single channel.
type Event interface {
	isEvent()
}

// Info reports progress from the most recently completed iterative-deepening
// depth.
type Info struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []move.Move
	HashFull int
}

func (Info) isEvent() {}

// BestMove concludes a search.
type BestMove struct {
	Move move.Move
}

func (BestMove) isEvent() {}
