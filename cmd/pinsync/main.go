package main

import "pinsync/cmd/pinsync/commands"

func main() {
	commands.Execute()
}
