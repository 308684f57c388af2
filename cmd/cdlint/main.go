package main

import (
	"context"
	"os"

	"go.followtheprocess.codes/cdlint/internal/cmd"
	"go.followtheprocess.codes/msg"
)

func main() {
	root, err := cmd.Build(context.Background())
	if err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}
}
