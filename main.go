package main

import "github.com/macroday/macroday/cmd/macroday"

func main() {
	macroday.Execute()
}
