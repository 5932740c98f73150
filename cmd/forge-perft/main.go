// Command forge-perft counts leaf nodes from a position to a fixed depth,
// used to validate the legal move generator against known node counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/corvidae/forge/internal/perft"
	"github.com/corvidae/forge/internal/position"
)

func main() {
	fenFlag := flag.String("fen", position.StartFEN, "FEN of the position to search from")
	depth := flag.Int("depth", 5, "search depth in plies")
	divide := flag.Bool("divide", false, "print per-root-move leaf counts")
	flag.Parse()

	pos, err := position.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}

	start := time.Now()

	if *divide {
		counts := perft.Divide(pos, *depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)

		var total uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Printf("\nTotal: %d\n", total)
	} else {
		nodes := perft.Count(pos, *depth)
		fmt.Printf("Nodes: %d\n", nodes)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
}
