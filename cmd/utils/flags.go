package utils

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "config.json",
		Usage:   "load configuration from `file`",
	}

	CheckConnectionFlag = &cli.BoolFlag{
		Name:  "check-connection",
		Usage: "check terminal connectivity and account status",
	}
)
