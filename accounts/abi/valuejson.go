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
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

// ParseJSONValues reads a JSON array holding one entry per argument and
// converts each entry with ParseJSONValue.
// ParseJSONValues 从 JSON 数组中读取每个参数对应的值。
func ParseJSONValues(args Arguments, input []byte) ([]Value, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(input, &raw); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON array: %v", ErrInvalidType, err)
	}
	if len(raw) != len(args) {
		return nil, fmt.Errorf("%w: got %d values for %d arguments", ErrArrayLengthMismatch, len(raw), len(args))
	}
	values := make([]Value, len(args))
	for i, arg := range args {
		v, err := ParseJSONValue(arg.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseJSONValue converts the JSON form of a value of type t.
//
// Integers are JSON numbers or decimal/0x-hex strings, byte types and
// addresses are 0x-hex strings, arrays are JSON arrays, tuples are JSON arrays
// in component order or objects keyed by component name.
func ParseJSONValue(t Type, input json.RawMessage) (Value, error) {
	return parseJSONValue(t, input, 0)
}

func parseJSONValue(t Type, input json.RawMessage, depth int) (Value, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	switch t.T {
	case UintTy, IntTy:
		n, err := parseJSONNumber(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		if t.T == UintTy {
			return Uint{n}, nil
		}
		return Int{n}, nil
	case BoolTy:
		var b bool
		if err := json.Unmarshal(input, &b); err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		return Bool(b), nil
	case StringTy:
		var s string
		if err := json.Unmarshal(input, &s); err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		return String(s), nil
	case AddressTy, FixedBytesTy, BytesTy, FunctionTy:
		var b hexutil.Bytes
		if err := json.Unmarshal(input, &b); err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		switch t.T {
		case AddressTy:
			if len(b) != common.AddressLength {
				return nil, fmt.Errorf("%w: address of %d bytes", ErrInvalidLength, len(b))
			}
			return Address(common.BytesToAddress(b)), nil
		case FunctionTy:
			var fn Function
			if len(b) != len(fn) {
				return nil, fmt.Errorf("%w: function of %d bytes", ErrInvalidLength, len(b))
			}
			copy(fn[:], b)
			return fn, nil
		case FixedBytesTy:
			return FixedBytes(b), nil
		default:
			return Bytes(b), nil
		}
	case SliceTy, ArrayTy:
		var raw []json.RawMessage
		if err := json.Unmarshal(input, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		arr := make(Array, len(raw))
		for i := range raw {
			v, err := parseJSONValue(*t.Elem, raw[i], depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case TupleTy:
		raw, err := tupleComponents(t, input)
		if err != nil {
			return nil, err
		}
		tuple := make(Tuple, len(raw))
		for i := range raw {
			v, err := parseJSONValue(*t.TupleElems[i], raw[i], depth+1)
			if err != nil {
				return nil, err
			}
			tuple[i] = v
		}
		return tuple, nil
	default:
		return nil, fmt.Errorf("%w: abi: unknown type %v", ErrNotImplemented, t.T)
	}
}

// tupleComponents splits a JSON tuple, given as array or object, into its
// components in declaration order.
func tupleComponents(t Type, input json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
		}
		if len(obj) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %v wants %d components, got %d", ErrArrayLengthMismatch, t, len(t.TupleElems), len(obj))
		}
		raw := make([]json.RawMessage, len(t.TupleElems))
		for i, name := range t.TupleRawNames {
			field, ok := obj[name]
			if !ok {
				return nil, fmt.Errorf("%w: %v has no component %q", ErrInvalidType, t, name)
			}
			raw[i] = field
		}
		return raw, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v for %v", ErrInvalidType, err, t)
	}
	if len(raw) != len(t.TupleElems) {
		return nil, fmt.Errorf("%w: %v wants %d components, got %d", ErrArrayLengthMismatch, t, len(t.TupleElems), len(raw))
	}
	return raw, nil
}

func parseJSONNumber(input json.RawMessage) (*big.Int, error) {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		var num json.Number
		dec := json.NewDecoder(bytes.NewReader(input))
		dec.UseNumber()
		if err := dec.Decode(&num); err != nil {
			return nil, err
		}
		s = num.String()
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// JSONValue renders v in the JSON form read by ParseJSONValue. Integers are
// rendered as decimal strings so no precision is lost.
// JSONValue 将 Value 转换为可 JSON 序列化的形式。
func JSONValue(v Value) interface{} {
	switch v := v.(type) {
	case Uint:
		return v.V.String()
	case Int:
		return v.V.String()
	case Bool:
		return bool(v)
	case String:
		return string(v)
	case Address:
		return common.Address(v).Hex()
	case FixedBytes:
		return hexutil.Encode(v)
	case Bytes:
		return hexutil.Encode(v)
	case Function:
		return hexutil.Encode(v[:])
	case Array:
		return jsonList(v)
	case Tuple:
		return jsonList(v)
	default:
		return nil
	}
}

func jsonList(vals []Value) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = JSONValue(v)
	}
	return out
}
