package main

import "github.com/afranz/boulder-events/internal/cli"

func main() {
	cli.Execute()
}
