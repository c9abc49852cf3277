package main

import "boilerInspector/cmd"

func main() {
	cmd.Execute()
}
