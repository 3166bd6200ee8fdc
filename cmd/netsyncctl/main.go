// Command netsyncctl encodes, decodes and bridges netsync payloads and
// publishes or reads session state from the configured store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "netsyncctl:", err)
		os.Exit(1)
	}
}
