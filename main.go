package main

import (
	"github.com/shahid0mer/Nexora/cmd"
)

func main() {
	cmd.Start()
}
