package main

import "github.com/stockdash/stockdash/cmd"

func main() {
	cmd.Execute()
}
