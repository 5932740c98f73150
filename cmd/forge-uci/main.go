// Command forge-uci runs the engine as a UCI protocol handler over stdio.
package main

import (
	"os"

	"github.com/corvidae/forge/internal/logging"
	"github.com/corvidae/forge/internal/uci"
)

func main() {
	defer logging.Sync()

	protocol := uci.New(os.Stdout)
	protocol.Run(os.Stdin)
}
