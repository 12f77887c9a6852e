package main

import (
	"SndHop/cmd"
)

func main() {
	cmd.Execute()
}
