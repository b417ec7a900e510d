package main

import (
	"github.com/openreach/formpilot/cmd"
)

func main() {
	cmd.Execute()
}
