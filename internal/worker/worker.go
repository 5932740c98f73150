package worker

import (
	"sync/atomic"

	"github.com/corvidae/forge/internal/logging"
	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/search"
	"github.com/corvidae/forge/internal/tt"
)

// rootRepeatThreshold: unlike the in-search "draw on first repeat"
// heuristic, the worker only treats the root position itself as a
// repetition draw on the third occurrence.
const rootRepeatThreshold = 3

// Worker owns the transposition table and runs one search at a time,
// communicating with its controller over two channels.
type Worker struct {
	cmds   chan Command
	events chan Event

	table *tt.Table
	stop  *atomic.Bool

	pos position.Position
}

// New starts the worker goroutine and returns the handle the controller
// uses to drive it. Close down with Quit.
func New() *Worker {
	w := &Worker{
		cmds:   make(chan Command, 4),
		events: make(chan Event, 64),
		table:  tt.New(),
		stop:   &atomic.Bool{},
		pos:    position.New(),
	}
	go w.run()
	return w
}

// Commands returns the channel the controller sends commands on.
func (w *Worker) Commands() chan<- Command { return w.cmds }

// Events returns the channel the controller receives events from.
func (w *Worker) Events() <-chan Event { return w.events }

func (w *Worker) run() {
	log := logging.Get()
	var pending Command
	for {
		var cmd Command
		if pending != nil {
			cmd, pending = pending, nil
		} else {
			var ok bool
			cmd, ok = <-w.cmds
			if !ok {
				return
			}
		}

		switch c := cmd.(type) {
		case SetPosition:
			w.pos = c.Pos
		case Search:
			pending = w.search(c)
		case Stop:
			// No search in flight: a bare Stop is a protocol no-op.
		case Quit:
			close(w.events)
			return
		default:
			log.Warnw("worker received unknown command", "command", cmd)
		}
	}
}

// search runs one iterative-deepening search and returns a command that
// arrived mid-search and still needs to be acted on, or nil.
func (w *Worker) search(cmd Search) Command {
	w.stop.Store(false)
	tm := newTimeManager(cmd)
	searcher := search.NewSearcher(w.table, w.stop)

	maxDepth := search.MaxPly - 1
	if cmd.Depth > 0 && cmd.Depth < maxDepth {
		maxDepth = cmd.Depth
	}

	var best move.Move
	var pending Command

	if w.pos.IsDrawByRepetition(rootRepeatThreshold) {
		w.events <- BestMove{Move: move.NoMove}
		return nil
	}

	for depth := 1; depth <= maxDepth; depth++ {
		if next := w.drainStop(tm, cmd); next != nil {
			pending = next
		}
		if w.stop.Load() {
			break
		}

		m, score := searcher.SearchDepth(w.pos, depth)
		if score == search.Cancelled {
			break
		}
		best = m

		w.events <- Info{
			Depth:    depth,
			Score:    score,
			Nodes:    searcher.Nodes(),
			Time:     tm.elapsed(),
			PV:       searcher.PV(),
			HashFull: w.table.HashFull(),
		}

		if score >= search.MateScore-search.MaxPly || score <= -search.MateScore+search.MaxPly {
			break
		}
		if cmd.Nodes > 0 && searcher.Nodes() >= cmd.Nodes {
			break
		}
		if cmd.Mode != SearchInfinite && tm.pastOptimum() {
			break
		}
	}

	w.events <- BestMove{Move: best}
	return pending
}

// drainStop services any Stop/SetPosition/Search commands that arrive
// mid-search without blocking the iterative-deepening loop, and applies the
// hard time budget. It runs only before each depth: a depth already in
// progress is not interrupted by a Stop, a new command or the hard budget,
// and the search ends once that depth completes. A drained Stop sets the
// stop flag; a SetPosition or new Search also sets it and is returned so
// run() can dispatch it once the search loop has unwound, per the ordering
// guarantee that mid-search commands are deferred, not dropped.
func (w *Worker) drainStop(tm *timeManager, cmd Search) Command {
	if cmd.Mode != SearchInfinite && tm.shouldStop() {
		w.stop.Store(true)
	}
	for {
		select {
		case c := <-w.cmds:
			switch c.(type) {
			case Stop:
				w.stop.Store(true)
			default:
				w.stop.Store(true)
				return c
			}
		default:
			return nil
		}
	}
}
