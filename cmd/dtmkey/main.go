package main

import (
	"github.com/agenthands/dtmkey/cmd/dtmkey/cmd"
)

func main() {
	cmd.Execute()
}
