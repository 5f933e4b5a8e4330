package main

import "github.com/gve-sw/gve-devnet-meraki-snapshot-collector/cmd"

func main() {
	cmd.Execute()
}
