// Command trigram trains an order-3 word model on a Project Gutenberg book or
// a local file and prints, or serves, text sampled from it.
package main

import (
	"os"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
