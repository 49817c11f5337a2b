package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/BoltzExchange/go-bolt11/build"
	"github.com/BoltzExchange/go-bolt11/logger"
)

func main() {
	app := &cli.App{
		Name:    "bolt11",
		Usage:   "Decode, create and sign BOLT 11 payment requests",
		Version: build.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Path of a file to append logs to",
			},
		},
		Before: func(ctx *cli.Context) error {
			logger.InitLogger(ctx.String("logfile"))
			return nil
		},
		Commands: []*cli.Command{
			decodeCommand,
			encodeCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
