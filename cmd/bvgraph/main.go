package main

import "github.com/beadviewer/bvgraph/cmd/bvgraph/commands"

func main() {
	commands.Execute()
}
