package main

import (
	"os"

	"github.com/viant/agentbridge/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
