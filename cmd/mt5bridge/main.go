package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/teaka-trade/mt5bridge/cmd/utils"
	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = &cli.App{
		Name:    filepath.Base(os.Args[0]),
		Usage:   "bridge between the orchestrator and the MetaTrader 5 terminal",
		Version: "1.0.0",
		Flags: []cli.Flag{
			utils.ConfigFlag,
			utils.CheckConnectionFlag,
		},
		Action: run,
	}
}

// run exits non-zero only when the terminal session cannot be opened;
// logical failures are reported through the success field on stdout.
func run(ctx *cli.Context) error {
	n, err := utils.GetNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close(ctx.Context)

	if ctx.Bool(utils.CheckConnectionFlag.Name) {
		return n.CheckConnection(ctx.Context)
	}
	return n.ExecuteTrade(ctx.Context, os.Stdin)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
