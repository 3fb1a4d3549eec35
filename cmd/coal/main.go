package main

import (
	"os"

	"github.com/hbjs97/coal/internal/cli"
)

func main() {
	os.Exit(cli.NewApp().Run(os.Args[1:]))
}
