package main

import (
	"fmt"
	"os"
)

// Version is set via -ldflags at release time.
var Version = "0.1.0-dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "icaldump:", err)
		os.Exit(1)
	}
}
