package main

import (
	"os"

	"github.com/1broseidon/hypract/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
