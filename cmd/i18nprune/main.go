package main

import (
	"os"

	"github.com/jenian/i18nprune/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
