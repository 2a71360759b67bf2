package utils

import (
	"github.com/teaka-trade/mt5bridge/node"
	"github.com/urfave/cli/v2"
)

func GetNode(ctx *cli.Context) (*node.Node, error) {
	c, err := node.ParseConfig(ctx.String(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}
	n := &node.Node{}
	if err := n.Init(ctx.Context, c); err != nil {
		return nil, err
	}
	return n, nil
}
