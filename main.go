package main

import (
	"context"
	"os"

	"calcd/presentation/cli"
)

func main() {
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	if err := cli.Execute(appCtx); err != nil {
		appCtxCancel()
		os.Exit(1)
	}
}
