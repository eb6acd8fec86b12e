package main

import (
	"github.com/fundvault/fundvaultd/internal/cli"
)

func main() {
	cli.Execute()
}
