package main

import "github.com/ddxfish/chatterm/cmd"

func main() {
	cmd.Execute()
}
