package main

import "github.com/mblarsen/toast-bridge/cmd"

func main() {
	cmd.Execute()
}
