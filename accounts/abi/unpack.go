// Copyright 2017 The go-ethereum Authors
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
	"unicode/utf8"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
)

var (
	// MaxUint256 is the maximum value that can be represented by a uint256.
	// MaxUint256 是 uint256 可以表示的最大值。
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 256), common.Big1)
	// MaxInt256 is the maximum value that can be represented by a int256.
	// MaxInt256 是 int256 可以表示的最大值。
	MaxInt256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 255), common.Big1)
)

// DecodeParameters is the inverse of EncodeParameters.
// DecodeParameters 是 EncodeParameters 的逆操作。
func DecodeParameters(data []byte, args Arguments) ([]Value, error) {
	return args.Unpack(data)
}

// DecodeFunctionData splits call data into its selector and decoded arguments.
func DecodeFunctionData(data []byte, args Arguments) ([4]byte, []Value, error) {
	var selector [4]byte
	if len(data) < 4 {
		return selector, nil, fmt.Errorf("%w: call data of %d bytes has no selector", ErrInvalidLength, len(data))
	}
	copy(selector[:], data[:4])
	values, err := args.Unpack(data[4:])
	if err != nil {
		return selector, nil, err
	}
	return selector, values, nil
}

// Unpack decodes the non-indexed arguments from data.
// Unpack 方法将 ABI 编码的数据解包为参数值。
func (arguments Arguments) Unpack(data []byte) ([]Value, error) {
	nonIndexedArgs := arguments.NonIndexed()
	if len(nonIndexedArgs) == 0 {
		return []Value{}, nil
	}
	if len(data) == 0 {
		return nil, ErrZeroData
	}
	types := make([]*Type, len(nonIndexedArgs))
	headSize := 0
	for i := range nonIndexedArgs {
		types[i] = &nonIndexedArgs[i].Type
		if headSize += getTypeSize(nonIndexedArgs[i].Type); headSize > len(data) {
			return nil, fmt.Errorf("%w: have %d bytes, arguments need at least %d", ErrDataTooSmall, len(data), headSize)
		}
	}
	d := decoder{data: data}
	return d.sequence(types, 0, 0)
}

// UnpackIntoMap decodes data and stores the values under their argument names.
// UnpackIntoMap 方法将数据解包为参数名到参数值的映射。
func (arguments Arguments) UnpackIntoMap(v map[string]Value, data []byte) error {
	if v == nil {
		return fmt.Errorf("%w: cannot unpack into a nil map", ErrInvalidType)
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[arg.Name] = values[i]
	}
	return nil
}

// decoder reads values out of a single input buffer. Every position it is
// handed is absolute; offsets read from the buffer are resolved against the
// start of the region that contains them.
type decoder struct {
	data []byte
}

// word returns the 32 byte word at pos.
func (d *decoder) word(pos int) ([]byte, error) {
	if pos < 0 || pos > len(d.data)-32 {
		return nil, outOfBoundsErr(pos, 32, len(d.data))
	}
	return d.data[pos : pos+32], nil
}

// readSize reads the word at pos as an offset or length. Anything larger than
// the buffer itself cannot be valid.
func (d *decoder) readSize(pos int) (int, error) {
	w, err := d.word(pos)
	if err != nil {
		return 0, err
	}
	var n uint256.Int
	n.SetBytes32(w)
	if !n.IsUint64() || n.Uint64() > uint64(len(d.data)) {
		return 0, fmt.Errorf("%w: size %s at offset %d exceeds buffer length %d", ErrOutOfBounds, n.Dec(), pos, len(d.data))
	}
	return int(n.Uint64()), nil
}

// sequence decodes consecutive head slots of the given types starting at
// regionStart. Offsets found in the head are relative to regionStart.
func (d *decoder) sequence(types []*Type, regionStart int, depth int) ([]Value, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	values := make([]Value, 0, len(types))
	pos := regionStart
	for _, t := range types {
		v, err := d.slot(*t, regionStart, pos, depth)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		pos += getTypeSize(*t)
	}
	return values, nil
}

// slot decodes the value whose head slot is at pos inside the region starting
// at regionStart.
func (d *decoder) slot(t Type, regionStart, pos, depth int) (Value, error) {
	if !isDynamicType(t) {
		return d.at(t, pos, depth)
	}
	offset, err := d.readSize(pos)
	if err != nil {
		return nil, err
	}
	start := regionStart + offset
	if start > len(d.data) {
		return nil, outOfBoundsErr(start, 32, len(d.data))
	}
	return d.at(t, start, depth)
}

// at decodes the payload of t beginning at the absolute position pos.
func (d *decoder) at(t Type, pos, depth int) (Value, error) {
	switch t.T {
	case TupleTy:
		values, err := d.sequence(t.TupleElems, pos, depth+1)
		if err != nil {
			return nil, err
		}
		return Tuple(values), nil

	case ArrayTy:
		if t.Size < 0 || t.Size > maxArrayLength {
			return nil, fmt.Errorf("%w: %v declares %d elements", ErrOutOfBounds, t, t.Size)
		}
		if size := getTypeSize(*t.Elem); size > 0 && t.Size > (len(d.data)-pos)/size {
			return nil, fmt.Errorf("%w: %v at offset %d, buffer length %d", ErrOutOfBounds, t, pos, len(d.data))
		}
		values, err := d.sequence(repeatType(t.Elem, t.Size), pos, depth+1)
		if err != nil {
			return nil, err
		}
		return Array(values), nil

	case SliceTy:
		length, err := d.readSize(pos)
		if err != nil {
			return nil, err
		}
		region := pos + 32
		// Each element takes at least its head slot, which bounds the allocation.
		if size := getTypeSize(*t.Elem); size > 0 && length > (len(d.data)-region)/size {
			return nil, fmt.Errorf("%w: %d elements of %v at offset %d, buffer length %d", ErrOutOfBounds, length, t.Elem, region, len(d.data))
		}
		values, err := d.sequence(repeatType(t.Elem, length), region, depth+1)
		if err != nil {
			return nil, err
		}
		return Array(values), nil

	case StringTy, BytesTy:
		length, err := d.readSize(pos)
		if err != nil {
			return nil, err
		}
		begin := pos + 32
		if length > len(d.data)-begin {
			return nil, outOfBoundsErr(begin, length, len(d.data))
		}
		payload := d.data[begin : begin+length]
		if t.T == StringTy {
			if !utf8.Valid(payload) {
				return nil, fmt.Errorf("%w: at offset %d", ErrInvalidUtf8, begin)
			}
			return String(payload), nil
		}
		return Bytes(common.CopyBytes(payload)), nil

	default:
		w, err := d.word(pos)
		if err != nil {
			return nil, err
		}
		return decodeWord(t, w)
	}
}

func repeatType(t *Type, n int) []*Type {
	types := make([]*Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}

// decodeWord interprets a single 32 byte word as a value of the elementary type t.
// decodeWord 将单个 32 字节的字解释为基本类型 t 的值。
func decodeWord(t Type, word []byte) (Value, error) {
	switch t.T {
	case UintTy, IntTy:
		return ReadInteger(t, word)
	case BoolTy:
		return readBool(word)
	case AddressTy:
		if !allZero(word[:12]) {
			return nil, badWordErr(t, word)
		}
		return Address(common.BytesToAddress(word[12:])), nil
	case FixedBytesTy:
		return ReadFixedBytes(t, word)
	case FunctionTy:
		return readFunctionType(t, word)
	case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
		return nil, fmt.Errorf("%w: %v is not a single word type", ErrInvalidType, t)
	default:
		return nil, fmt.Errorf("%w: abi: unknown type %v", ErrNotImplemented, t.T)
	}
}

// ReadInteger reads the integer based on its kind and returns the appropriate value.
// Words whose value does not fit the declared size are rejected.
// ReadInteger 根据整数类型读取整数并返回适当的值。
func ReadInteger(typ Type, b []byte) (Value, error) {
	var word uint256.Int
	word.SetBytes32(b)

	if typ.T == UintTy {
		if word.BitLen() > typ.Size {
			return nil, badWordErr(typ, b)
		}
		return Uint{word.ToBig()}, nil
	}
	// On EVM, if the returned number > max int256, it is negative.
	// A number is > max int256 if the bit at position 255 is set.
	// 在 EVM 上，如果第 255 位被置位，则数字为负数。
	ret := word.ToBig()
	if word.Sign() < 0 {
		ret = new(uint256.Int).Neg(&word).ToBig()
		ret.Neg(ret)
	}
	if !fitsSigned(ret, typ.Size) {
		return nil, badWordErr(typ, b)
	}
	return Int{ret}, nil
}

// readBool reads a bool.
// readBool 读取布尔值。
func readBool(word []byte) (Value, error) {
	if !allZero(word[:31]) {
		return nil, badWordErr(Type{T: BoolTy, stringKind: "bool"}, word)
	}
	switch word[31] {
	case 0:
		return Bool(false), nil
	case 1:
		return Bool(true), nil
	default:
		return nil, badWordErr(Type{T: BoolTy, stringKind: "bool"}, word)
	}
}

// A function type is simply the address with the function selection signature at the end.
//
// readFunctionType enforces that standard by always presenting it as a 24-array (address + sig = 24 bytes)
// 函数类型仅仅是地址后面跟有函数选择签名。
func readFunctionType(t Type, word []byte) (Value, error) {
	if t.T != FunctionTy {
		return nil, fmt.Errorf("%w: invalid type in call to make function type byte array", ErrInvalidType)
	}
	if !allZero(word[24:32]) {
		return nil, badWordErr(t, word)
	}
	var fn Function
	copy(fn[:], word[0:24])
	return fn, nil
}

// ReadFixedBytes reads the leading t.Size bytes of a word.
// ReadFixedBytes 读取字中前 t.Size 个字节。
func ReadFixedBytes(t Type, word []byte) (Value, error) {
	if t.T != FixedBytesTy {
		return nil, fmt.Errorf("%w: invalid type in call to make fixed byte array", ErrInvalidType)
	}
	return FixedBytes(common.CopyBytes(word[0:t.Size])), nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
