// Command wfc is the terminal host for the Wave Function Collapse
// engine: an interactive REPL over pkg/cli. An input sample path given on
// the command line is loaded before the REPL starts; otherwise the
// built-in pipe sample is used.
package main

import "github.com/Elwqnn/wfc/pkg/cli"

func main() {
	cli.RunCLI()
}
