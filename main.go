package main

import (
	"os"

	"tpch-bench/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
