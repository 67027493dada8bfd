// Command evalctl administers the evaluation portal database: migrations, the
// performance standard seed, the active cycle and bootstrap accounts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
