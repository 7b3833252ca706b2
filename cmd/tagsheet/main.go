package main

import "github.com/kamusis/tagsheet/cmd"

func main() {
	cmd.Execute()
}
