// Copyright 2016 The go-ethereum Authors
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
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
)

const (
	// MaxRecursionDepth bounds the nesting of arrays and tuples.
	MaxRecursionDepth = 64

	// MaxEncodedLength bounds the size of a single encoding.
	MaxEncodedLength = 10 << 20

	// headLimit is the saturated head size of types too large to encode.
	headLimit = MaxEncodedLength + 1

	// maxArrayLength is the most elements a fixed array may declare.
	maxArrayLength = MaxEncodedLength / 32
)

// EncodeParameters lays out values according to args using the head/tail
// scheme: static values inline, dynamic values behind an offset into the tail.
// EncodeParameters 按照头部/尾部方案对参数进行编码。
func EncodeParameters(args Arguments, values []Value) ([]byte, error) {
	return args.Pack(values...)
}

// EncodeFunctionData prefixes the encoded arguments with a 4 byte selector.
func EncodeFunctionData(selector [4]byte, args Arguments, values []Value) ([]byte, error) {
	packed, err := args.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(selector[:], packed...), nil
}

// Pack performs the operation Value -> Hexdata.
// Pack 方法将参数值打包为 ABI 编码的数据。
func (arguments Arguments) Pack(values ...Value) ([]byte, error) {
	if len(values) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrArrayLengthMismatch, len(values), len(arguments))
	}
	types := make([]*Type, len(arguments))
	for i := range arguments {
		types[i] = &arguments[i].Type
	}
	return packSequence(types, values, 0)
}

// packSequence encodes values as a tuple of the given types.
//
// (T1,...,Tk) for k >= 0 and any types T1, …, Tk
// enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
// where X = (X(1), ..., X(k)) and head and tail are defined for Ti being a static
// type as
//
//	head(X(i)) = enc(X(i)) and tail(X(i)) = "" (the empty string)
//
// and as
//
//	head(X(i)) = enc(len(head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(i-1))))
//	tail(X(i)) = enc(X(i))
//
// otherwise, i.e. if Ti is a dynamic type. Offsets are therefore relative to the
// start of the sequence itself.
func packSequence(types []*Type, values []Value, depth int) ([]byte, error) {
	// Calculate prefix occupied size.
	// 计算头部占用的大小。
	offset := 0
	for _, t := range types {
		offset += getTypeSize(*t)
		if offset > MaxEncodedLength {
			return nil, fmt.Errorf("%w: head exceeds %d bytes", ErrOutOfMemory, MaxEncodedLength)
		}
	}
	ret := make([]byte, 0, offset)
	var tail []byte
	for i, t := range types {
		val, err := t.pack(values[i], depth)
		if err != nil {
			return nil, err
		}
		if isDynamicType(*t) {
			ret = append(ret, packNum(uint64(offset))...)
			tail = append(tail, val...)
			offset += len(val)
		} else {
			ret = append(ret, val...)
		}
		if len(ret)+len(tail) > MaxEncodedLength {
			return nil, fmt.Errorf("%w: encoding exceeds %d bytes", ErrOutOfMemory, MaxEncodedLength)
		}
	}
	return append(ret, tail...), nil
}

func (t Type) pack(v Value, depth int) ([]byte, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	switch t.T {
	case SliceTy, ArrayTy:
		arr, ok := v.(Array)
		if !ok {
			return nil, typeErr(t, v)
		}
		if t.T == ArrayTy && len(arr) != t.Size {
			return nil, fmt.Errorf("%w: %v wants %d elements, got %d", ErrArrayLengthMismatch, t, t.Size, len(arr))
		}
		elems := make([]*Type, len(arr))
		for i := range elems {
			elems[i] = t.Elem
		}
		body, err := packSequence(elems, arr, depth+1)
		if err != nil {
			return nil, err
		}
		if t.requiresLengthPrefix() {
			return append(packNum(uint64(len(arr))), body...), nil
		}
		return body, nil

	case TupleTy:
		tuple, ok := v.(Tuple)
		if !ok {
			return nil, typeErr(t, v)
		}
		if len(tuple) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %v wants %d components, got %d", ErrArrayLengthMismatch, t, len(t.TupleElems), len(tuple))
		}
		return packSequence(t.TupleElems, tuple, depth+1)

	default:
		return packElement(t, v)
	}
}

// packElement packs an elementary or dynamic byte value according to t.
// packElement 根据类型 t 打包基本类型的值。
func packElement(t Type, v Value) ([]byte, error) {
	switch t.T {
	case UintTy:
		n, ok := v.(Uint)
		if !ok || n.V == nil {
			return nil, typeErr(t, v)
		}
		if n.V.Sign() < 0 || n.V.BitLen() > t.Size {
			return nil, fmt.Errorf("%w: %v out of range for %v", ErrInvalidType, n.V, t)
		}
		return packBig(n.V), nil
	case IntTy:
		n, ok := v.(Int)
		if !ok || n.V == nil {
			return nil, typeErr(t, v)
		}
		if !fitsSigned(n.V, t.Size) {
			return nil, fmt.Errorf("%w: %v out of range for %v", ErrInvalidType, n.V, t)
		}
		return packBig(n.V), nil
	case BoolTy:
		b, ok := v.(Bool)
		if !ok {
			return nil, typeErr(t, v)
		}
		if b {
			return packNum(1), nil
		}
		return packNum(0), nil
	case AddressTy:
		a, ok := v.(Address)
		if !ok {
			return nil, typeErr(t, v)
		}
		return common.LeftPadBytes(a[:], 32), nil
	case FixedBytesTy:
		b, ok := v.(FixedBytes)
		if !ok {
			return nil, typeErr(t, v)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("%w: %v wants %d bytes, got %d", ErrInvalidType, t, t.Size, len(b))
		}
		return common.RightPadBytes(common.CopyBytes(b), 32), nil
	case FunctionTy:
		f, ok := v.(Function)
		if !ok {
			return nil, typeErr(t, v)
		}
		return common.RightPadBytes(f[:], 32), nil
	case BytesTy:
		b, ok := v.(Bytes)
		if !ok {
			return nil, typeErr(t, v)
		}
		return packBytesSlice(b, len(b)), nil
	case StringTy:
		s, ok := v.(String)
		if !ok {
			return nil, typeErr(t, v)
		}
		return packBytesSlice([]byte(s), len(s)), nil
	default:
		return nil, fmt.Errorf("%w: could not pack element, unknown type: %v", ErrNotImplemented, t.T)
	}
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
// packBytesSlice 将给定的字节数据打包为 [L, V] 的规范表示形式。
func packBytesSlice(bytes []byte, l int) []byte {
	len := packNum(uint64(l))
	return append(len, common.RightPadBytes(common.CopyBytes(bytes), (l+31)/32*32)...)
}

// packNum packs an unsigned number into a 32 byte big-endian word.
func packNum(n uint64) []byte {
	word := uint256.NewInt(n).Bytes32()
	return word[:]
}

// packBig packs a signed or unsigned big integer as a 256 bit two's complement
// word. The caller has checked the range.
func packBig(n *big.Int) []byte {
	var u uint256.Int
	u.SetFromBig(n)
	word := u.Bytes32()
	return word[:]
}

// fitsSigned reports whether n is representable as an int<bits>.
func fitsSigned(n *big.Int, bits int) bool {
	if n.Sign() >= 0 {
		return n.BitLen() <= bits-1
	}
	// -2^(bits-1) is the smallest value; |n|-1 must fit bits-1 bits.
	mag := new(big.Int).Neg(n)
	mag.Sub(mag, common.Big1)
	return mag.BitLen() <= bits-1
}
