package main

import "protect-cli/cmd"

func main() {
	cmd.Execute()
}
