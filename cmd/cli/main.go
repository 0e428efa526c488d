// msgsift - message export analysis
//
// msgsift reads a semicolon-delimited export of text messages and searches
// message bodies, extracts embedded coordinates, or ranks the most used words.
package main

import (
	"os"

	"github.com/ccollicutt/msgsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
