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
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
)

func TestToValueElementary(t *testing.T) {
	tests := []struct {
		typ  string
		in   interface{}
		want Value
	}{
		{"uint8", uint8(7), NewUint(7)},
		{"uint64", uint64(1 << 63), NewUintBig(new(big.Int).Lsh(big.NewInt(1), 63))},
		{"int16", int16(-5), NewInt(-5)},
		{"uint256", big.NewInt(99), NewUint(99)},
		{"uint256", uint256.NewInt(12), NewUint(12)},
		{"uint256", *uint256.NewInt(13), NewUint(13)},
		{"uint256", new(uint256.Int).SetAllOne(), NewUintBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))},
		{"int64", *big.NewInt(-3), NewInt(-3)},
		{"bool", true, Bool(true)},
		{"address", fromAddr, Address(fromAddr)},
		{"address", &fromAddr, Address(fromAddr)},
		{"bytes2", [2]byte{1, 2}, FixedBytes{1, 2}},
		{"bytes", []byte("abc"), Bytes("abc")},
		{"string", "abc", String("abc")},
		{"uint8[]", []uint8{1, 2}, Array{NewUint(1), NewUint(2)}},
		{"int32[2]", [2]int32{-1, 1}, Array{NewInt(-1), NewInt(1)}},
		{"string", String("kept"), String("kept")},
	}
	for _, tt := range tests {
		got, err := ToValue(MustNewType(tt.typ), tt.in)
		require.NoError(t, err, "%s <- %T", tt.typ, tt.in)
		assert.True(t, Equal(tt.want, got), "%s <- %T: got %v", tt.typ, tt.in, got)
	}
}

func TestToValueErrors(t *testing.T) {
	tests := []struct {
		typ string
		in  interface{}
	}{
		{"uint256", "12"},
		{"uint256", [4]uint64{1, 2, 3, 4}},
		{"bool", 1},
		{"address", []byte{1, 2}},
		{"string", []byte("x")},
		{"uint8[]", 3},
	}
	for _, tt := range tests {
		_, err := ToValue(MustNewType(tt.typ), tt.in)
		assert.ErrorIs(t, err, ErrInvalidType, "%s <- %T", tt.typ, tt.in)
	}
	_, err := ToValue(MustNewType("bool"), nil)
	assert.ErrorIs(t, err, ErrInvalidType)
	var nilPtr *big.Int
	_, err = ToValue(MustNewType("uint256"), nilPtr)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestToValueStruct(t *testing.T) {
	typ, err := NewType("tuple", "struct Payment", []ArgumentMarshaling{
		{Name: "amount", Type: "uint256"},
		{Name: "recipient", Type: "address"},
		{Name: "memo_text", Type: "string"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment", typ.TupleRawName)

	type payment struct {
		Amount   *big.Int
		Who      common.Address `abi:"recipient"`
		MemoText string
	}
	got, err := ToValue(typ, payment{Amount: big.NewInt(5), Who: toAddr, MemoText: "rent"})
	require.NoError(t, err)
	want := Tuple{NewUint(5), Address(toAddr), String("rent")}
	assert.True(t, Equal(want, got), "got %v", got)

	got, err = ToValue(typ, []interface{}{uint64(5), toAddr, "rent"})
	require.NoError(t, err)
	assert.True(t, Equal(want, got))

	type missing struct {
		Amount *big.Int
	}
	_, err = ToValue(typ, missing{Amount: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidType)

	type badTag struct {
		Amount *big.Int `abi:"nope"`
	}
	_, err = ToValue(typ, badTag{})
	assert.Error(t, err)
}

func TestNativeValue(t *testing.T) {
	v := Tuple{NewUint(1), Array{Bool(true)}, Address(fromAddr), Bytes{7}, String("s"), Function{1}}
	native := NativeValue(v).([]interface{})
	assert.Equal(t, big.NewInt(1), native[0])
	assert.Equal(t, []interface{}{true}, native[1])
	assert.Equal(t, fromAddr, native[2])
	assert.Equal(t, []byte{7}, native[3])
	assert.Equal(t, "s", native[4])
	assert.Equal(t, [24]byte{1}, native[5])
}

func TestToCamelCase(t *testing.T) {
	for input, want := range map[string]string{
		"name":       "Name",
		"memo_text":  "MemoText",
		"_private":   "Private",
		"a__b":       "AB",
		"already_Up": "AlreadyUp",
	} {
		assert.Equal(t, want, ToCamelCase(input), input)
	}
}
