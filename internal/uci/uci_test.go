package uci

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/search"
	"github.com/corvidae/forge/internal/worker"
)

// safeBuffer lets the test goroutine poll output written concurrently by
// the worker's event-draining goroutine.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForSubstring(t *testing.T, b *safeBuffer, substr string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), substr) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output; got:\n%s", substr, b.String())
}

func TestUCIHandshake(t *testing.T) {
	out := &safeBuffer{}
	in, inWriter := io.Pipe()
	u := New(out)

	done := make(chan struct{})
	go func() {
		u.Run(in)
		close(done)
	}()

	inWriter.Write([]byte("uci\n"))
	waitForSubstring(t, out, "uciok", time.Second)
	assert.Contains(t, out.String(), "id name forge")

	inWriter.Write([]byte("isready\n"))
	waitForSubstring(t, out, "readyok", time.Second)

	inWriter.Write([]byte("quit\n"))
	inWriter.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestGoDepthProducesBestMove(t *testing.T) {
	out := &safeBuffer{}
	in, inWriter := io.Pipe()
	u := New(out)

	done := make(chan struct{})
	go func() {
		u.Run(in)
		close(done)
	}()

	inWriter.Write([]byte("position startpos\n"))
	inWriter.Write([]byte("go depth 2\n"))
	waitForSubstring(t, out, "bestmove", 5*time.Second)

	inWriter.Write([]byte("quit\n"))
	inWriter.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestParseMoveRejectsIllegalMove(t *testing.T) {
	u := &UCI{pos: position.New()}
	// e2e5 is not a legal pawn move from the start position.
	assert.Equal(t, move.NoMove, u.parseMove("e2e5"))
}

func TestParseMoveAcceptsLegalMove(t *testing.T) {
	u := &UCI{pos: position.New()}
	m := u.parseMove("e2e4")
	require.NotEqual(t, move.NoMove, m)
	assert.Equal(t, "e2e4", m.String())
}

func TestParseMoveDisambiguatesPromotion(t *testing.T) {
	p, err := position.ParseFEN("8/4P3/8/8/8/8/8/4k2K w - - 0 1")
	require.NoError(t, err)
	u := &UCI{pos: p}

	m := u.parseMove("e7e8q")
	require.NotEqual(t, move.NoMove, m)
	assert.True(t, m.IsPromotion())
	assert.Equal(t, move.Queen, m.Promotion())
}

func TestSendInfoFormatsMateScore(t *testing.T) {
	out := &bytes.Buffer{}
	u := &UCI{out: out}

	u.sendInfo(worker.Info{
		Depth: 5,
		Score: search.MateScore - 1,
		Nodes: 100,
		Time:  10 * time.Millisecond,
	})
	assert.Contains(t, out.String(), "score mate 1")
}

func TestSendInfoFormatsCentipawnScore(t *testing.T) {
	out := &bytes.Buffer{}
	u := &UCI{out: out}

	u.sendInfo(worker.Info{Depth: 1, Score: 35, Nodes: 1})
	assert.Contains(t, out.String(), "score cp 35")
}

func TestHandlePositionAppliesMoves(t *testing.T) {
	out := &bytes.Buffer{}
	u := New(out)
	defer func() { u.w.Commands() <- worker.Quit{} }()

	u.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})
	assert.Equal(t, 2, u.pos.FullmoveNumber)
}

func TestHandlePositionRejectsBadFEN(t *testing.T) {
	out := &bytes.Buffer{}
	u := New(out)
	defer func() { u.w.Commands() <- worker.Quit{} }()

	u.handlePosition([]string{"fen", "not-a-real-fen"})
	assert.Contains(t, out.String(), "invalid FEN")
}
