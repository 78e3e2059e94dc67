package main

import "github.com/camila/personachat/internal/commands"

func main() {
	commands.Execute()
}
