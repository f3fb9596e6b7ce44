package main

import "github.com/alapierre/itrust-keychain/internal/cli"

func main() {
	cli.Main()
}
