package main

import "github.com/sadopc/reportr/internal/cli"

func main() {
	cli.Execute()
}
