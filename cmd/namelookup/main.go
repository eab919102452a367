package main

import "github.com/npillmayer/bstmap/internal/cli"

func main() {
	cli.Execute()
}
