package main

import "github.com/vvatanabe/shiptracker/internal/cmd"

func main() {
	cmd.Execute()
}
