package main

import "phrasegraph/cmd"

func main() {
	cmd.Execute()
}
