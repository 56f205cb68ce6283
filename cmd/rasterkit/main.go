package main

import "github.com/MeKo-Tech/rasterkit/cmd/rasterkit/cmd"

func main() {
	cmd.Execute()
}
