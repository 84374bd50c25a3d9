// Package main is the entry point of the framestep command-line tool.
package main

import "github.com/sarchlab/framestep/framestep/cmd"

func main() {
	cmd.Execute()
}
