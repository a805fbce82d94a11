package main

import (
	"github.com/nsac-nust/stray-tracker/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Execute()
}
