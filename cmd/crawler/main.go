// Command crawler is the entrypoint for the spacetime-crawler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/arjunsahni/spacetime-crawler-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
