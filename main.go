package main

import "github/chapool/wallet-session/cmd"

func main() {
	cmd.Execute()
}
