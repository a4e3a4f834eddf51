package main

import (
	"os"

	"github.com/arthur-debert/morsk/cmd/morsk"
)

func main() {
	os.Exit(morsk.Run(os.Args[1:], os.Stdout, os.Stderr))
}
