package main

import "github.com/philipparndt/meshcombine/internal/cmd"

func main() {
	cmd.Parse()
}
