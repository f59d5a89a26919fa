package main

import "github.com/sdboard/sdboard/cmd"

func main() {
	cmd.Execute()
}
