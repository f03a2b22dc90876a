package main

import "github.com/jvs-project/punch/internal/cli"

func main() {
	cli.Execute()
}
