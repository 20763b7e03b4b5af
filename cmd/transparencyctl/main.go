package main

import "transparency/internal/cli"

func main() {
	cli.Execute()
}
