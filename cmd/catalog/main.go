// Command catalog browses the creature catalog: as an HTTP server that
// prerenders listings, as a terminal browser, or as a one-shot listing.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
