package main

import "github.com/Daskott/sosrelay/cmd"

func main() {
	cmd.Execute()
}
