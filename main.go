package main

import "github.com/KaramelBytes/chasta-cli/cmd"

func main() {
	cmd.Execute()
}
