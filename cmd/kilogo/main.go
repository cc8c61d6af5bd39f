// Command kilogo is a small terminal text editor: point it at a file
// (or run it with none to start an empty buffer) and it takes over the
// controlling TTY until Ctrl-Q.
package main

import (
	"fmt"
	"os"

	"github.com/aeikemo/kilogo/editor"
)

func main() {
	args := os.Args[1:]

	e := editor.New()
	if err := e.EnableRawMode(); err != nil {
		e.Die("enabling raw mode: %v", err)
	}
	defer func() {
		if err := e.DisableRawMode(); err != nil {
			fmt.Fprintf(os.Stderr, "kilogo: %v\n", err)
		}
	}()

	if err := e.Init(); err != nil {
		e.Die("initializing editor: %v", err)
	}

	if len(args) >= 1 {
		if err := e.Open(args[0]); err != nil {
			e.Die("%v", err)
		}
	}

	e.WatchResize()
	e.SetStatusMessage("HELP: Ctrl-S save | Ctrl-Q quit | Ctrl-F find | Ctrl-G help | Ctrl-O browse")

	e.Run()
}
