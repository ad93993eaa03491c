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
)

// EncodePacked produces Solidity's non-standard packed encoding
// (abi.encodePacked). Elementary values take only as many bytes as their type,
// strings and bytes are written raw, and array elements are padded to 32 bytes
// without a length prefix. Tuples and nested arrays have no packed encoding.
// EncodePacked 生成 Solidity 的紧凑编码，结果有歧义，不能被解码。
func EncodePacked(types []Type, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: %d values for %d types", ErrArrayLengthMismatch, len(values), len(types))
	}
	var out []byte
	for i, t := range types {
		enc, err := packedValue(t, values[i])
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
		if len(out) > MaxEncodedLength {
			return nil, fmt.Errorf("%w: encoding exceeds %d bytes", ErrOutOfMemory, MaxEncodedLength)
		}
	}
	return out, nil
}

func packedValue(t Type, v Value) ([]byte, error) {
	switch t.T {
	case SliceTy, ArrayTy:
		elem := *t.Elem
		if elem.T == SliceTy || elem.T == ArrayTy || elem.T == TupleTy || isDynamicType(elem) {
			return nil, fmt.Errorf("%w: packed encoding of %v", ErrNotImplemented, t)
		}
		arr, ok := v.(Array)
		if !ok {
			return nil, typeErr(t, v)
		}
		if t.T == ArrayTy && len(arr) != t.Size {
			return nil, fmt.Errorf("%w: %v wants %d elements, got %d", ErrArrayLengthMismatch, t, t.Size, len(arr))
		}
		out := make([]byte, 0, 32*len(arr))
		for _, e := range arr {
			word, err := packElement(elem, e)
			if err != nil {
				return nil, err
			}
			out = append(out, word...)
		}
		return out, nil
	case TupleTy:
		return nil, fmt.Errorf("%w: packed encoding of %v", ErrNotImplemented, t)
	case StringTy:
		s, ok := v.(String)
		if !ok {
			return nil, typeErr(t, v)
		}
		return []byte(s), nil
	case BytesTy:
		b, ok := v.(Bytes)
		if !ok {
			return nil, typeErr(t, v)
		}
		return append([]byte{}, b...), nil
	}
	word, err := packElement(t, v)
	if err != nil {
		return nil, err
	}
	switch t.T {
	case UintTy, IntTy:
		return word[32-t.Size/8:], nil
	case BoolTy:
		return word[31:], nil
	case AddressTy:
		return word[12:], nil
	case FixedBytesTy:
		return word[:t.Size], nil
	case FunctionTy:
		return word[:24], nil
	}
	return nil, fmt.Errorf("%w: packed encoding of %v", ErrNotImplemented, t)
}
