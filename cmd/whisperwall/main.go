package main

import "github.com/whisperwall/cli/internal/cmd"

func main() {
	cmd.Execute()
}
