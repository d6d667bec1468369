package main

import (
	"github.com/rlmatchup/rlmatchup-go/internal/cli"
)

func main() {
	cli.Execute()
}
