package main

import "hk/cmd"

func main() {
	cmd.Execute()
}
