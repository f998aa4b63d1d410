// Command contentctl is the operator tool of the site: it loads content on demand,
// renders the feeds and inspects the local state kept in BadgerDB.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "contentctl: %v\n", err)
		os.Exit(1)
	}
}
