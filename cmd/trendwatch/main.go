// Command trendwatch is a terminal dashboard for hourly trending search
// keywords.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trendwatch:", err)
		os.Exit(1)
	}
}
