// Package tt implements the transposition table: a fixed-size
// direct-mapped array of 128-bit entries (64-bit full hash + 64-bit packed
// payload), replacing by search-quality rather than by age.
package tt

import "github.com/corvidae/forge/internal/move"

// NodeType tags how a stored score relates to the search window that
// produced it.
type NodeType uint8

const (
	// NoNode marks an empty slot.
	NoNode NodeType = iota
	PVNode          // exact score
	CutNode         // lower bound (beta cutoff)
	AllNode         // upper bound (fail-low)
)

func (n NodeType) rank() int {
	switch n {
	case PVNode:
		return 2
	case CutNode:
		return 1
	case AllNode:
		return 0
	default:
		return -1
	}
}

// Entry is the logical (unpacked) view of a slot.
type Entry struct {
	Hash           uint64
	Score          int16
	Best           move.Move
	Depth          int8
	HalfmoveClock  uint8 // snapshot, 7 bits used
	NodeType       NodeType
	ResettingMoves uint8 // 7-bit age/generation counter, worker-owned
}

// slot is the packed 128-bit (two uint64) on-disk-shaped representation.
type slot struct {
	hash    uint64
	payload uint64
}

func packPayload(e Entry) uint64 {
	var p uint64
	p |= uint64(uint16(e.Score))
	p |= uint64(uint16(e.Best)) << 16
	p |= uint64(uint8(e.Depth)) << 32
	p |= uint64(e.HalfmoveClock&0x7F) << 40
	p |= uint64(e.NodeType&0x3) << 47
	p |= uint64(e.ResettingMoves&0x7F) << 49
	return p
}

func unpackPayload(hash, payload uint64) Entry {
	return Entry{
		Hash:           hash,
		Score:          int16(uint16(payload)),
		Best:           move.Move(uint16(payload >> 16)),
		Depth:          int8(uint8(payload >> 32)),
		HalfmoveClock:  uint8((payload >> 40) & 0x7F),
		NodeType:       NodeType((payload >> 47) & 0x3),
		ResettingMoves: uint8((payload >> 49) & 0x7F),
	}
}

// Size is the fixed table size, 2^20 entries (~16 MiB of 16-byte slots).
const Size = 1 << 20
const indexMask = Size - 1

// Table is the direct-mapped transposition table.
type Table struct {
	slots []slot
}

// New allocates a fresh, empty table.
func New() *Table {
	return &Table{slots: make([]slot, Size)}
}

func (t *Table) index(hash uint64) uint64 { return hash & indexMask }

// Probe returns the entry iff the stored hash equals the query hash.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	s := t.slots[t.index(hash)]
	if s.hash != hash || (s.hash == 0 && s.payload == 0) {
		return Entry{}, false
	}
	return unpackPayload(s.hash, s.payload), true
}

// quality is 3*depth + node-type-rank, used by the replacement policy.
func quality(depth int8, nt NodeType) int {
	return 3*int(depth) + nt.rank()
}

// Store inserts e, replacing the slot unless it holds a different-quality
// entry for the SAME position with strictly higher quality. Entries from a
// different hash are always overwritten (no aging).
func (t *Table) Store(e Entry) {
	idx := t.index(e.Hash)
	cur := t.slots[idx]
	if cur.hash == e.Hash {
		curEntry := unpackPayload(cur.hash, cur.payload)
		if quality(curEntry.Depth, curEntry.NodeType) > quality(e.Depth, e.NodeType) {
			return
		}
	}
	t.slots[idx] = slot{hash: e.Hash, payload: packPayload(e)}
}

// Clear empties the table.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
}

// HashFull samples the first 1000 entries and reports how many are
// occupied, in UCI permille units.
func (t *Table) HashFull() int {
	n := 1000
	if n > len(t.slots) {
		n = len(t.slots)
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.slots[i].hash != 0 || t.slots[i].payload != 0 {
			used++
		}
	}
	return used * 1000 / n
}

// AdjustScoreToTT/AdjustScoreFromTT perform mate-distance adjustment so
// stored mate scores remain correct regardless of the ply at which they are
// later retrieved.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

func AdjustScoreToTT(score, ply int) int16 {
	if score >= MateScore-MaxPly {
		return int16(score + ply)
	}
	if score <= -MateScore+MaxPly {
		return int16(score - ply)
	}
	return int16(score)
}

func AdjustScoreFromTT(score int16, ply int) int {
	s := int(score)
	if s >= MateScore-MaxPly {
		return s - ply
	}
	if s <= -MateScore+MaxPly {
		return s + ply
	}
	return s
}
