// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for abicodec commands.
package utils

import (
	"github.com/sunyihoo/abicodec/accounts/abi"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Input settings
	ABIFlag = &cli.StringFlag{
		Name:      "abi",
		Usage:     "Contract ABI definition file (JSON)",
		TakesFile: true,
		Category:  flags.InputCategory,
	}
	SignatureFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    `Function or event signature, e.g. "transfer(address,uint256)"`,
		Category: flags.InputCategory,
	}
	InputFileFlag = &cli.StringFlag{
		Name:      "input",
		Usage:     "File holding a JSON array of logs or receipts (default: stdin)",
		TakesFile: true,
		Category:  flags.InputCategory,
	}
	ReceiptsFlag = &cli.BoolFlag{
		Name:     "receipts",
		Usage:    "Treat the input as a JSON array of transaction receipts instead of logs",
		Category: flags.InputCategory,
	}
	AddressFlag = &cli.StringSliceFlag{
		Name:     "address",
		Usage:    "Only decode logs emitted by these contract addresses",
		Category: flags.InputCategory,
	}
	EventFlag = &cli.StringSliceFlag{
		Name:     "event",
		Usage:    "Only decode logs of these ABI events (by name)",
		Category: flags.InputCategory,
	}

	// Codec settings
	LenientFlag = &cli.BoolFlag{
		Name:     "lenient",
		Usage:    "Substitute absent values for event data that does not decode instead of failing",
		Category: flags.CodecCategory,
	}
	PackedFlag = &cli.BoolFlag{
		Name:     "packed",
		Usage:    "Use the non-standard packed encoding (abi.encodePacked)",
		Category: flags.CodecCategory,
	}

	// Performance tuning settings
	CacheFlag = &cli.IntFlag{
		Name:     "cache",
		Usage:    "Megabytes of memory allocated to the signature hash cache (0 disables it)",
		Value:    abi.DefaultSigCacheSize / (1024 * 1024),
		Category: flags.PerfCategory,
	}
	WorkersFlag = &cli.IntFlag{
		Name:     "workers",
		Usage:    "Number of logs decoded concurrently by decode-logs",
		Value:    4,
		Category: flags.PerfCategory,
	}
)
