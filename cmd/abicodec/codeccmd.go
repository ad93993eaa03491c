// Copyright 2025 The go-ethereum Authors
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


package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sunyihoo/abicodec/accounts/abi"
	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
)

var (
	selectorCommand = &cli.Command{
		Action:    selector,
		Name:      "selector",
		Usage:     "Compute the 4 byte selector of a function signature",
		ArgsUsage: "<signature>",
		Description: `
Prints the first four bytes of the Keccak-256 hash of the canonical form of
the signature, e.g.

    abicodec selector "transfer(address,uint256)"

prints 0xa9059cbb. Tuples are written as parenthesized component lists,
e.g. "draw((uint8,bytes)[],string)".`,
	}
	topicCommand = &cli.Command{
		Action:    topic,
		Name:      "topic",
		Usage:     "Compute the topic hash of an event signature",
		ArgsUsage: "<signature>",
		Description: `
Prints the Keccak-256 hash of the canonical event signature, which is the
first topic of every log the event emits unless it is anonymous.`,
	}
	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "ABI encode a list of values",
		ArgsUsage: "<types> <values>",
		Flags:     []cli.Flag{utils.PackedFlag},
		Description: `
Encodes values given as a JSON array against a parenthesized type list:

    abicodec encode "(uint256,string)" '[42, "hello"]'

Integers may be JSON numbers or decimal and 0x-hex strings. Byte types and
addresses are 0x-hex strings. Tuples are JSON arrays or objects.`,
	}
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "Decode ABI encoded data into JSON values",
		ArgsUsage: "<types> <hexdata>",
	}
	calldataCommand = &cli.Command{
		Action:    calldata,
		Name:      "calldata",
		Usage:     "Build the call data of a function call",
		ArgsUsage: "<signature> <values>",
	}
	decodeCalldataCommand = &cli.Command{
		Action:    decodeCalldata,
		Name:      "decode-calldata",
		Usage:     "Decode function call data",
		ArgsUsage: "<hexdata>",
		Flags:     []cli.Flag{utils.ABIFlag, utils.SignatureFlag},
		Description: `
Finds the called method by its selector in the contract ABI given by --abi,
or checks the selector against the signature given by --sig, and prints the
decoded arguments as JSON.`,
	}
)

var errArgCount = errors.New("wrong number of arguments")

func checkArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return fmt.Errorf("%w: want %d, have %d (usage: %s %s)", errArgCount, n, ctx.NArg(), ctx.Command.Name, ctx.Command.ArgsUsage)
	}
	return nil
}

// parseTypeList reads a parenthesized type list such as "(uint256,bytes)".
// A leading identifier is accepted and ignored.
func parseTypeList(s string) (abi.Arguments, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		s = "f" + s
	}
	_, args, err := abi.ParseSignature(s)
	return args, err
}

// canonicalSignature parses sig and renders it back in canonical form.
func canonicalSignature(sig string) (string, abi.Arguments, error) {
	name, args, err := abi.ParseSignature(strings.TrimSpace(sig))
	if err != nil {
		return "", nil, err
	}
	canonical, err := abi.BuildSignature(name, args)
	if err != nil {
		return "", nil, err
	}
	return canonical, args, nil
}

func selector(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	sig, _, err := canonicalSignature(ctx.Args().First())
	if err != nil {
		return err
	}
	sel := abi.ComputeSelector(sig)
	log.Debug("Computed selector", "sig", sig, "selector", hexutil.Encode(sel[:]))
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(sel[:]))
	return nil
}

func topic(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	sig, _, err := canonicalSignature(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, abi.ComputeEventTopicHash(sig).Hex())
	return nil
}

func encode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	args, err := parseTypeList(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	values, err := abi.ParseJSONValues(args, []byte(ctx.Args().Get(1)))
	if err != nil {
		return err
	}
	var out []byte
	if ctx.Bool(utils.PackedFlag.Name) {
		types := make([]abi.Type, len(args))
		for i, arg := range args {
			types[i] = arg.Type
		}
		out, err = abi.EncodePacked(types, values)
	} else {
		out, err = abi.EncodeParameters(args, values)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}

func decode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	args, err := parseTypeList(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}
	values, err := abi.DecodeParameters(data, args)
	if err != nil {
		return err
	}
	return writeJSON(ctx, jsonValues(values))
}

func calldata(ctx *cli.Context) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	sig, args, err := canonicalSignature(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	values, err := abi.ParseJSONValues(args, []byte(ctx.Args().Get(1)))
	if err != nil {
		return err
	}
	out, err := abi.EncodeFunctionData(abi.ComputeSelector(sig), args, values)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}

// decodedCall is the JSON output of decode-calldata.
type decodedCall struct {
	Method    string        `json:"method"`
	Signature string        `json:"signature"`
	Selector  hexutil.Bytes `json:"selector"`
	Args      []interface{} `json:"args"`
}

func decodeCalldata(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	if err := flags.CheckExclusive(ctx, utils.ABIFlag, utils.SignatureFlag); err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}
	switch {
	case ctx.IsSet(utils.ABIFlag.Name):
		contract, err := loadABI(ctx.String(utils.ABIFlag.Name))
		if err != nil {
			return err
		}
		method, values, err := contract.DecodeCall(data)
		if err != nil {
			return err
		}
		return writeJSON(ctx, decodedCall{
			Method:    method.Name,
			Signature: method.Sig,
			Selector:  method.ID,
			Args:      jsonValues(values),
		})

	case ctx.IsSet(utils.SignatureFlag.Name):
		sig, args, err := canonicalSignature(ctx.String(utils.SignatureFlag.Name))
		if err != nil {
			return err
		}
		want := abi.ComputeSelector(sig)
		have, values, err := abi.DecodeFunctionData(data, args)
		if err != nil {
			return err
		}
		if have != want {
			return fmt.Errorf("%w: %s has selector %#x, call data has %#x", abi.ErrSelectorTopicMismatch, sig, want, have)
		}
		return writeJSON(ctx, decodedCall{
			Method:    sig[:strings.IndexByte(sig, '(')],
			Signature: sig,
			Selector:  want[:],
			Args:      jsonValues(values),
		})

	default:
		return fmt.Errorf("either --%s or --%s is required", utils.ABIFlag.Name, utils.SignatureFlag.Name)
	}
}

// loadABI reads a contract ABI definition from a JSON file.
func loadABI(file string) (*abi.ABI, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contract, err := abi.JSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	log.Debug("Loaded contract ABI", "file", file, "methods", len(contract.Methods), "events", len(contract.Events))
	return &contract, nil
}

func jsonValues(values []abi.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = abi.JSONValue(v)
	}
	return out
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	enc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(enc))
	return nil
}
