package main

import (
	"github.com/agoranet/agora/cmd/agora/cmd"
)

func main() {
	cmd.Execute()
}
