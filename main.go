package main

import (
	"fmt"
	"os"

	"github.com/zeu5/river-crossing-rl/commands"
)

// main entry point to training and inspecting the river crossing agent
func main() {
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
