package main

import (
	"os"

	"github.com/shahbajlive/deck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
