package main

import "github.com/LeJamon/goNFTize/internal/cli"

func main() {
	cli.Execute()
}
