package main

import "github.com/jumbo77/c2dev-700/cmd"

func main() {
	cmd.Execute()
}
