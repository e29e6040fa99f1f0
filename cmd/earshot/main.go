package main

import (
	"os"

	"github.com/earshot-dev/earshot/cmd/earshot/cli"
)

func main() {
	os.Exit(cli.Execute())
}
