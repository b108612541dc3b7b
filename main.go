package main

import "github.com/sadopc/ritmo/internal/cli"

func main() {
	cli.Execute()
}
