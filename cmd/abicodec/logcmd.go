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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sunyihoo/abicodec/accounts/abi"
	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/core/types"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	decodeLogCommand = &cli.Command{
		Action:    decodeLog,
		Name:      "decode-log",
		Usage:     "Decode a single event log against a contract ABI",
		ArgsUsage: "<logjson>",
		Flags:     []cli.Flag{utils.ABIFlag},
		Description: `
Decodes one log, given in the JSON form returned by eth_getLogs, with the
event of the contract ABI whose topic hash matches the first topic of the log.
With --lenient, log data that does not match the event is reported as absent
fields instead of failing the decode.`,
	}
	decodeLogsCommand = &cli.Command{
		Action: decodeLogs,
		Name:   "decode-logs",
		Usage:  "Decode a batch of event logs or transaction receipts",
		Flags: []cli.Flag{
			utils.ABIFlag,
			utils.InputFileFlag,
			utils.ReceiptsFlag,
			utils.AddressFlag,
			utils.EventFlag,
		},
		Description: `
Reads a JSON array of logs (or receipts with --receipts) from --input or
standard input, filters them by --address and --event and prints one decoded
JSON record per line, in input order. Receipts whose logs bloom rules out the
filter are skipped without looking at their logs.`,
	}
)

// decodedField is the JSON form of an abi.EventField.
type decodedField struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Indexed bool         `json:"indexed"`
	State   string       `json:"state"`
	Value   interface{}  `json:"value,omitempty"`
	Hash    *common.Hash `json:"hash,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// decodedLog is the JSON record printed for every decoded log.
type decodedLog struct {
	Event       string         `json:"event,omitempty"`
	Signature   string         `json:"signature,omitempty"`
	Address     common.Address `json:"address"`
	BlockNumber uint64         `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	LogIndex    uint           `json:"logIndex"`
	Fields      []decodedField `json:"fields,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func newDecodedLog(lg *types.Log) decodedLog {
	return decodedLog{
		Address:     lg.Address,
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash,
		LogIndex:    lg.Index,
	}
}

// decodeOne decodes lg with the matching event of contract.
func decodeOne(contract *abi.ABI, lg *types.Log, mode abi.DecodeMode) (decodedLog, error) {
	out := newDecodedLog(lg)
	event, fields, err := contract.DecodeLog(lg, mode)
	if err != nil {
		out.Error = err.Error()
		return out, err
	}
	out.Event, out.Signature = event.Name, event.Sig
	out.Fields = make([]decodedField, len(fields))
	for i, f := range fields {
		df := decodedField{
			Name:    f.Name,
			Type:    f.Type.String(),
			Indexed: f.Indexed,
			State:   f.State.String(),
		}
		switch f.State {
		case abi.FieldDecoded:
			df.Value = abi.JSONValue(f.Value)
		case abi.FieldHashOnly:
			hash := f.Hash
			df.Hash = &hash
		case abi.FieldAbsent:
			if f.Err != nil {
				df.Error = f.Err.Error()
			}
		}
		out.Fields[i] = df
	}
	return out, nil
}

func requireABI(ctx *cli.Context) (*abi.ABI, error) {
	if !ctx.IsSet(utils.ABIFlag.Name) {
		return nil, fmt.Errorf("missing required flag --%s", utils.ABIFlag.Name)
	}
	return loadABI(ctx.String(utils.ABIFlag.Name))
}

func decodeLog(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	contract, err := requireABI(ctx)
	if err != nil {
		return err
	}
	var lg types.Log
	if err := json.Unmarshal([]byte(ctx.Args().First()), &lg); err != nil {
		return fmt.Errorf("invalid log: %w", err)
	}
	out, err := decodeOne(contract, &lg, currentConfig(ctx).Codec.decodeMode())
	if err != nil {
		return err
	}
	return writeJSON(ctx, out)
}

// logFilter selects the logs decode-logs looks at.
type logFilter struct {
	addresses []common.Address
	topics    [][]common.Hash
}

func makeLogFilter(ctx *cli.Context, contract *abi.ABI) (logFilter, error) {
	var filter logFilter
	for _, s := range ctx.StringSlice(utils.AddressFlag.Name) {
		if !common.IsHexAddress(s) {
			return filter, fmt.Errorf("invalid address %q", s)
		}
		filter.addresses = append(filter.addresses, common.HexToAddress(s))
	}
	var ids []common.Hash
	for _, name := range ctx.StringSlice(utils.EventFlag.Name) {
		event, ok := contract.Events[name]
		if !ok {
			return filter, fmt.Errorf("event %q not found in ABI", name)
		}
		if event.Anonymous {
			return filter, fmt.Errorf("anonymous event %q cannot be selected by topic", name)
		}
		ids = append(ids, event.ID)
	}
	if len(ids) > 0 {
		filter.topics = [][]common.Hash{ids}
	}
	return filter, nil
}

// mayMatch reports whether a receipt with the given bloom can hold a log
// passing the filter.
func (f logFilter) mayMatch(bloom types.Bloom) bool {
	var ids []common.Hash
	if len(f.topics) > 0 {
		ids = f.topics[0]
	}
	switch {
	case len(f.addresses) > 0 && len(ids) > 0:
		for _, addr := range f.addresses {
			for _, id := range ids {
				if bloom.MayContain(addr, id) {
					return true
				}
			}
		}
		return false
	case len(f.addresses) > 0:
		for _, addr := range f.addresses {
			if types.BloomLookup(bloom, addr) {
				return true
			}
		}
		return false
	case len(ids) > 0:
		for _, id := range ids {
			if types.BloomLookup(bloom, id) {
				return true
			}
		}
		return false
	}
	return true
}

func readInput(ctx *cli.Context) ([]byte, error) {
	if file := ctx.String(utils.InputFileFlag.Name); file != "" {
		return os.ReadFile(file)
	}
	return io.ReadAll(ctx.App.Reader)
}

// collectLogs reads the input and returns the logs passing the filter.
func collectLogs(ctx *cli.Context, filter logFilter) ([]*types.Log, error) {
	input, err := readInput(ctx)
	if err != nil {
		return nil, err
	}
	if !ctx.Bool(utils.ReceiptsFlag.Name) {
		var logs []*types.Log
		if err := json.Unmarshal(input, &logs); err != nil {
			return nil, fmt.Errorf("invalid log list: %w", err)
		}
		return types.FilterLogs(logs, filter.addresses, filter.topics), nil
	}
	var receipts types.Receipts
	if err := json.Unmarshal(input, &receipts); err != nil {
		return nil, fmt.Errorf("invalid receipt list: %w", err)
	}
	kept := make(types.Receipts, 0, len(receipts))
	for _, r := range receipts {
		if err := r.VerifyBloom(); err != nil {
			return nil, fmt.Errorf("receipt %s: %w", r.TxHash.Hex(), err)
		}
		if !filter.mayMatch(r.Bloom) {
			log.Trace("Skipping receipt by bloom", "tx", r.TxHash)
			continue
		}
		kept = append(kept, r)
	}
	log.Debug("Filtered receipts by bloom", "total", len(receipts), "kept", len(kept))
	return types.FilterLogs(kept.Logs(), filter.addresses, filter.topics), nil
}

func decodeLogs(ctx *cli.Context) error {
	if err := checkArgs(ctx, 0); err != nil {
		return err
	}
	contract, err := requireABI(ctx)
	if err != nil {
		return err
	}
	filter, err := makeLogFilter(ctx, contract)
	if err != nil {
		return err
	}
	logs, err := collectLogs(ctx, filter)
	if err != nil {
		return err
	}

	var (
		cfg     = currentConfig(ctx).Codec
		mode    = cfg.decodeMode()
		start   = time.Now()
		results = make([]decodedLog, len(logs))
		errs    = make([]error, len(logs))
		g       errgroup.Group
	)
	g.SetLimit(cfg.Workers)
	for i, lg := range logs {
		i, lg := i, lg
		g.Go(func() error {
			results[i], errs[i] = decodeOne(contract, lg, mode)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, res := range results {
		if errs[i] != nil {
			failed++
			log.Warn("Failed to decode log", "tx", res.TxHash, "index", res.LogIndex, "err", errs[i])
		}
		if err := writeJSON(ctx, res); err != nil {
			return err
		}
	}
	log.Info("Decoded event logs", "logs", len(logs), "failed", failed, "mode", mode, "workers", cfg.Workers, "elapsed", time.Since(start))
	if failed > 0 && mode == abi.StrictMode {
		return fmt.Errorf("%d of %d logs failed to decode", failed, len(logs))
	}
	return nil
}
