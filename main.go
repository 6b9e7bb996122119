package main

import "github.com/Alturino/tgcart/cmd"

func main() {
	cmd.Start()
}
