// Package uci implements a Universal Chess Interface subset:
// uci/isready/position/go/stop/quit, plus a couple of debug commands
// (d, perft) useful during development.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/logging"
	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/perft"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/search"
	"github.com/corvidae/forge/internal/worker"
)

// UCI drives a worker.Worker over stdin/stdout.
type UCI struct {
	w   *worker.Worker
	out io.Writer

	pos       position.Position
	searching bool
}

// New creates a handler around a freshly started worker.
func New(out io.Writer) *UCI {
	return &UCI{
		w:   worker.New(),
		out: out,
		pos: position.New(),
	}
}

// Run reads commands from in until EOF or "quit".
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			u.w.Commands() <- worker.Quit{}
			return
		case "setoption":
			// Accepted and ignored: the Depth and Nodes options that "uci"
			// advertises are not applied.
		case "d":
			fmt.Fprintln(u.out, u.pos.String())
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Fprintf(u.out, "info string unknown command %s\n", cmd)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name forge")
	fmt.Fprintln(u.out, "id author corvidae")
	fmt.Fprintln(u.out, "option name Depth type spin default 0 min 0 max 128")
	fmt.Fprintln(u.out, "option name Nodes type spin default 0 min 0 max 2000000000")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.pos = position.New()
	u.w.Commands() <- worker.SetPosition{Pos: u.pos}
}

// handlePosition parses "position startpos|fen <fen> [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.pos = position.New()
		moveStart = 1
	case "fen":
		fenEnd := len(args)
		for i, a := range args[1:] {
			if a == "moves" {
				fenEnd = i + 1
				break
			}
		}
		p, err := position.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid FEN: %v\n", err)
			return
		}
		u.pos = p
		moveStart = fenEnd + 1
	default:
		return
	}

	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}

	for i := moveStart; i < len(args); i++ {
		m := u.parseMove(args[i])
		if m == move.NoMove {
			logging.Get().Warnw("protocol violation: illegal move in position command, ignoring rest", "move", args[i])
			break
		}
		u.pos = u.pos.MakeMove(m)
	}

	u.w.Commands() <- worker.SetPosition{Pos: u.pos}
}

func (u *UCI) parseMove(s string) move.Move {
	if len(s) < 4 {
		return move.NoMove
	}
	from, ok1 := bitboard.ParseSquare(s[0:2])
	to, ok2 := bitboard.ParseSquare(s[2:4])
	if !ok1 || !ok2 {
		return move.NoMove
	}

	var promo move.PieceType
	hasPromo := len(s) == 5
	if hasPromo {
		promo = move.FromChar(s[4]).Type()
	}

	legal := u.pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if hasPromo {
			if m.IsPromotion() && m.Promotion() == promo {
				return m
			}
			continue
		}
		if !m.IsPromotion() {
			return m
		}
	}
	return move.NoMove
}

func (u *UCI) handleGo(args []string) {
	cmd := worker.Search{Mode: worker.SearchInfinite}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			cmd.Depth, _ = strconv.Atoi(args[i])
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			cmd.Nodes = n
		case "movetime":
			i++
			ms, _ := strconv.Atoi(args[i])
			cmd.MoveTime = time.Duration(ms) * time.Millisecond
			cmd.Mode = worker.SearchMoveTime
		case "infinite":
			cmd.Mode = worker.SearchInfinite
		case "wtime":
			i++
			ms, _ := strconv.Atoi(args[i])
			cmd.TimeLeft[bitboard.White] = time.Duration(ms) * time.Millisecond
			cmd.Mode = worker.SearchTimeLeft
		case "btime":
			i++
			ms, _ := strconv.Atoi(args[i])
			cmd.TimeLeft[bitboard.Black] = time.Duration(ms) * time.Millisecond
			cmd.Mode = worker.SearchTimeLeft
		case "winc":
			i++
			ms, _ := strconv.Atoi(args[i])
			cmd.Increment[bitboard.White] = time.Duration(ms) * time.Millisecond
		case "binc":
			i++
			ms, _ := strconv.Atoi(args[i])
			cmd.Increment[bitboard.Black] = time.Duration(ms) * time.Millisecond
		case "movestogo":
			i++
			cmd.MovesToGo, _ = strconv.Atoi(args[i])
		}
	}

	cmd.Ply = u.pos.FullmoveNumber*2 - 2
	cmd.SideToMove = u.pos.SideToMove

	u.searching = true
	u.w.Commands() <- cmd
	go u.drainEvents()
}

func (u *UCI) drainEvents() {
	for ev := range u.w.Events() {
		switch e := ev.(type) {
		case worker.Info:
			u.sendInfo(e)
		case worker.BestMove:
			u.searching = false
			if e.Move == move.NoMove {
				fmt.Fprintln(u.out, "bestmove 0000")
			} else {
				fmt.Fprintf(u.out, "bestmove %s\n", e.Move.String())
			}
			return
		}
	}
}

func (u *UCI) sendInfo(info worker.Info) {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d", info.Depth)

	switch {
	case info.Score >= search.MateScore-search.MaxPly:
		fmt.Fprintf(&b, " score mate %d", (search.MateScore-info.Score+1)/2)
	case info.Score <= -search.MateScore+search.MaxPly:
		fmt.Fprintf(&b, " score mate %d", -(search.MateScore+info.Score+1)/2)
	default:
		fmt.Fprintf(&b, " score cp %d", info.Score)
	}

	fmt.Fprintf(&b, " nodes %d time %d", info.Nodes, info.Time.Milliseconds())
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		fmt.Fprintf(&b, " nps %d", nps)
	}
	fmt.Fprintf(&b, " hashfull %d", info.HashFull)

	if len(info.PV) > 0 {
		b.WriteString(" pv")
		for _, m := range info.PV {
			b.WriteString(" " + m.String())
		}
	}

	fmt.Fprintln(u.out, b.String())
}

func (u *UCI) handleStop() {
	if !u.searching {
		return
	}
	u.w.Commands() <- worker.Stop{}
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}
	start := time.Now()
	nodes := perft.Count(u.pos, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
