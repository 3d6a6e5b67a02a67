package main

import "github.com/wicaksana/hr-workflow/cmd"

func main() {
	cmd.Execute()
}
