// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// abicodec is a command-line tool for the Ethereum contract ABI.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/abicodec/internal/debug"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/urfave/cli/v2"
)

const (
	clientIdentifier = "abicodec" // Client identifier used in log file names and help output
)

var app = flags.NewApp("the Ethereum contract ABI codec command line interface")

func init() {
	app.Name = clientIdentifier
	app.Commands = []*cli.Command{
		// See codeccmd.go:
		selectorCommand,
		topicCommand,
		encodeCommand,
		decodeCommand,
		calldataCommand,
		decodeCalldataCommand,
		// See logcmd.go:
		decodeLogCommand,
		decodeLogsCommand,
		// See config.go:
		dumpConfigCommand,
		// See misccmd.go:
		versionCommand,
	}
	app.Flags = flags.Merge(
		[]cli.Flag{configFileFlag},
		codecFlags,
		debug.Flags,
	)

	before := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := before(ctx); err != nil {
			return err
		}
		return setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and prepares logging and the signature cache
// before any command runs.
func setup(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	if err := debug.Setup(ctx, cfg.Log); err != nil {
		return err
	}
	applyCodecConfig(cfg.Codec)
	return nil
}
