package main

import "github.com/tilescan/tilescan/cmd"

func main() {
	cmd.Execute()
}
