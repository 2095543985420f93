package main

import "github.com/photoframe/photoframe/cmd"

func main() {
	cmd.Execute()
}
