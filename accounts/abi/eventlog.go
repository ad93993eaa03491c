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

package abi

import (
	"fmt"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/core/types"
	"github.com/sunyihoo/abicodec/log"
)

// DecodeMode selects how DecodeEventLog treats log data that does not decode.
type DecodeMode int

const (
	// StrictMode fails the whole decode on any mismatch.
	StrictMode DecodeMode = iota

	// LenientMode marks non-indexed fields absent when the log data cannot be
	// decoded. Selector and topic count mismatches still fail.
	LenientMode
)

func (m DecodeMode) String() string {
	switch m {
	case StrictMode:
		return "strict"
	case LenientMode:
		return "lenient"
	default:
		return fmt.Sprintf("DecodeMode(%d)", int(m))
	}
}

// FieldState tells how much of an event field could be recovered from a log.
type FieldState int

const (
	// FieldDecoded fields carry their original value.
	FieldDecoded FieldState = iota

	// FieldHashOnly fields were indexed reference types. Only the Keccak256
	// hash of the value was logged, the value itself is unrecoverable.
	FieldHashOnly

	// FieldAbsent fields could not be decoded (lenient mode only).
	FieldAbsent
)

func (s FieldState) String() string {
	switch s {
	case FieldDecoded:
		return "decoded"
	case FieldHashOnly:
		return "hash"
	case FieldAbsent:
		return "absent"
	default:
		return fmt.Sprintf("FieldState(%d)", int(s))
	}
}

// EventField is one event input recovered from a log.
// EventField 是从日志中恢复的一个事件输入。
type EventField struct {
	Name    string
	Type    Type
	Indexed bool
	State   FieldState

	Value Value       // set when State is FieldDecoded
	Hash  common.Hash // set when State is FieldHashOnly
	Err   error       // cause, when State is FieldAbsent
}

func (f EventField) String() string {
	switch f.State {
	case FieldDecoded:
		return fmt.Sprintf("%s %s = %v", f.Type, f.Name, f.Value)
	case FieldHashOnly:
		return fmt.Sprintf("%s %s = hash(%s)", f.Type, f.Name, f.Hash.Hex())
	default:
		return fmt.Sprintf("%s %s = <absent>", f.Type, f.Name)
	}
}

// DecodeEventLog splits a log back into the inputs of event, in declaration
// order. Indexed inputs come from topics[1:] (topics[0:] for anonymous events),
// the others are decoded from the log data.
// DecodeEventLog 将日志按事件声明顺序还原为各个输入字段。
func DecodeEventLog(event Event, lg *types.Log, mode DecodeMode) ([]EventField, error) {
	topics := lg.Topics
	if !event.Anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: event %s: log has no topics", ErrSelectorTopicMismatch, event.Name)
		}
		if topics[0] != event.ID {
			return nil, fmt.Errorf("%w: event %s: have %s, want %s", ErrSelectorTopicMismatch, event.Name, topics[0].Hex(), event.ID.Hex())
		}
		topics = topics[1:]
	}

	fields := make([]EventField, len(event.Inputs))
	var (
		indexed    []int
		nonIndexed []int
	)
	for i, input := range event.Inputs {
		fields[i] = EventField{Name: input.Name, Type: input.Type, Indexed: input.Indexed}
		if input.Indexed {
			indexed = append(indexed, i)
		} else {
			nonIndexed = append(nonIndexed, i)
		}
	}

	// Indexed inputs, one topic each.
	// 索引参数，每个消耗一个主题。
	// A topic count that disagrees with the event fails in either mode.
	if len(topics) != len(indexed) {
		return nil, fmt.Errorf("%w: event %s has %d indexed inputs, log has %d topics", ErrTopicsMismatch, event.Name, len(indexed), len(topics))
	}
	for n, i := range indexed {
		field := &fields[i]
		if isHashedTopic(field.Type) {
			field.State = FieldHashOnly
			field.Hash = topics[n]
			continue
		}
		v, err := decodeWord(field.Type, topics[n].Bytes())
		if err != nil {
			return nil, fmt.Errorf("abi: event %s: indexed input %q: %w", event.Name, field.Name, err)
		}
		field.State, field.Value = FieldDecoded, v
	}

	// Non-indexed inputs, decoded together from data.
	// 非索引参数，统一从 data 中解码。
	if len(nonIndexed) == 0 {
		return fields, nil
	}
	values, err := decodeLogData(event, lg.Data)
	if err != nil {
		if mode == StrictMode {
			return nil, fmt.Errorf("%w: event %s: %w", ErrDecodeLogDataMismatch, event.Name, err)
		}
		for _, i := range nonIndexed {
			fields[i].State, fields[i].Err = FieldAbsent, err
			log.Warn("Substituting absent event field", "event", event.Name, "field", fields[i].Name, "err", err)
		}
		return fields, nil
	}
	for n, i := range nonIndexed {
		fields[i].State, fields[i].Value = FieldDecoded, values[n]
	}
	return fields, nil
}

func decodeLogData(event Event, data []byte) ([]Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: log carries no data", ErrZeroData)
	}
	return event.Inputs.Unpack(data)
}

// DecodedValues flattens fields into plain values. The result is lossy:
//
//   - a FieldHashOnly field becomes a Bytes value holding its 32 byte hash,
//     which cannot be told apart from a decoded bytes value and is never the
//     original string, bytes, array or tuple
//   - a FieldAbsent field becomes nil
//
// Callers that need to know which values are real should read the State of
// each EventField instead.
func DecodedValues(fields []EventField) []Value {
	out := make([]Value, len(fields))
	for i, f := range fields {
		switch f.State {
		case FieldDecoded:
			out[i] = f.Value
		case FieldHashOnly:
			out[i] = Bytes(f.Hash.Bytes())
		}
	}
	return out
}
