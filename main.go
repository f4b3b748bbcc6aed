package main

import "diamond-exchange/internal/cli"

func main() {
	cli.Execute()
}
