package main

import (
	cmd "github.com/kerbaras/holocron/cmd/holocron"
)

func main() {
	cmd.Execute()
}
