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
	"fmt"
	"math/big"
	"strings"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

// Value is a decoded or to-be-encoded ABI value. The set of implementations is
// closed: Uint, Int, Bool, Address, FixedBytes, Bytes, String, Array, Tuple and
// Function. Each variant is accepted only by the matching Type; there are no
// implicit conversions between them.
// Value 是一个 ABI 值，其实现集合是封闭的。
type Value interface {
	fmt.Stringer
	abiValue()
}

type (
	// Uint is the value of a uint<N> slot. V must be non-negative.
	Uint struct{ V *big.Int }

	// Int is the value of an int<N> slot.
	Int struct{ V *big.Int }

	// Bool is the value of a bool slot.
	Bool bool

	// Address is the value of an address slot.
	Address common.Address

	// FixedBytes is the value of a bytes<N> slot; its length must equal N.
	FixedBytes []byte

	// Bytes is the value of a dynamic bytes slot.
	Bytes []byte

	// String is the value of a string slot.
	String string

	// Array holds the elements of a T[] or T[k] slot.
	Array []Value

	// Tuple holds the components of a tuple slot in declaration order.
	Tuple []Value

	// Function is an address followed by a 4 byte selector.
	Function [24]byte
)

func (Uint) abiValue()       {}
func (Int) abiValue()        {}
func (Bool) abiValue()       {}
func (Address) abiValue()    {}
func (FixedBytes) abiValue() {}
func (Bytes) abiValue()      {}
func (String) abiValue()     {}
func (Array) abiValue()      {}
func (Tuple) abiValue()      {}
func (Function) abiValue()   {}

// NewUint returns a Uint holding x.
func NewUint(x uint64) Uint { return Uint{new(big.Int).SetUint64(x)} }

// NewInt returns an Int holding x.
func NewInt(x int64) Int { return Int{big.NewInt(x)} }

// NewUintBig returns a Uint holding a copy of x.
func NewUintBig(x *big.Int) Uint { return Uint{new(big.Int).Set(x)} }

// NewIntBig returns an Int holding a copy of x.
func NewIntBig(x *big.Int) Int { return Int{new(big.Int).Set(x)} }

func (v Uint) String() string { return bigString(v.V) }
func (v Int) String() string  { return bigString(v.V) }

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v Address) String() string    { return common.Address(v).Hex() }
func (v FixedBytes) String() string { return hexutil.Encode(v) }
func (v Bytes) String() string      { return hexutil.Encode(v) }
func (v String) String() string     { return fmt.Sprintf("%q", string(v)) }
func (v Function) String() string   { return hexutil.Encode(v[:]) }

func (v Array) String() string { return "[" + joinValues(v) + "]" }
func (v Tuple) String() string { return "(" + joinValues(v) + ")" }

func bigString(b *big.Int) string {
	if b == nil {
		return "<nil>"
	}
	return b.String()
}

func joinValues(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		if v == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

// Equal reports whether a and b are the same variant holding the same value.
// Equal 判断两个值是否为同一变体且内容相同。
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Uint:
		b, ok := b.(Uint)
		return ok && bigEqual(a.V, b.V)
	case Int:
		b, ok := b.(Int)
		return ok && bigEqual(a.V, b.V)
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Address:
		b, ok := b.(Address)
		return ok && a == b
	case FixedBytes:
		b, ok := b.(FixedBytes)
		return ok && bytes.Equal(a, b)
	case Bytes:
		b, ok := b.(Bytes)
		return ok && bytes.Equal(a, b)
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Function:
		b, ok := b.(Function)
		return ok && a == b
	case Array:
		b, ok := b.(Array)
		return ok && valuesEqual(a, b)
	case Tuple:
		b, ok := b.(Tuple)
		return ok && valuesEqual(a, b)
	}
	return a == nil && b == nil
}

// ValuesEqual reports whether two value lists are pairwise Equal.
func ValuesEqual(a, b []Value) bool {
	return valuesEqual(a, b)
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
