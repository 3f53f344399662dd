package main

import (
	"github.com/kira-tools/kira/pkg/cli"
)

func main() {
	cli.Execute()
}
