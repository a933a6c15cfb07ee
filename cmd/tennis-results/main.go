package main

import "github.com/tleroy/tennis-results/internal/cli"

func main() {
	cli.Execute()
}
