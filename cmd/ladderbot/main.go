package main

import (
	"github.com/ladderbot/ladderbot/pkg/cmd"
)

func main() {
	cmd.Execute()
}
