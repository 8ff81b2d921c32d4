package main

import "bundlescan/cmd"

func main() {
	cmd.Execute()
}
