package main

import "github.com/paulkarayan/skronk-and-skreigh/cmd"

func main() {
	cmd.Execute()
}
