// Entry point for the lrperc CLI. Subcommands live in cmd/.
package main

import "github.com/lrperc/lrperc/cmd"

func main() {
	cmd.Execute()
}
