package main

import (
	"os"

	"github.com/Domenick1991/flightdb/internal/cli"
)

func main() {
	os.Exit(cli.New().Execute(os.Args[1:], os.Stdout, os.Stderr))
}
