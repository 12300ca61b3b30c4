package main

import "nuget-tools/internal/cli"

func main() {
	cli.Execute()
}
