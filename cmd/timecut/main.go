package main

import "github.com/forPelevin/timecut/internal/cli"

func main() {
	cli.Main()
}
