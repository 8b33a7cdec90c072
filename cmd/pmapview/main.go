package main

import "github.com/philipparndt/pmapview/cmd"

func main() {
	cmd.Execute()
}
