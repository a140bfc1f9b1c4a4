package main

import "github.com/K0NGR3SS/colrisk/commands"

func main() {
	commands.Execute()
}
