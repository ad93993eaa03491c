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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

func TestEncodePacked(t *testing.T) {
	types := args(t, "int16", "bytes1", "uint16", "string").Types()
	typs := make([]Type, len(types))
	for i, s := range types {
		typs[i] = MustNewType(s)
	}
	out, err := EncodePacked(typs, []Value{NewInt(-1), FixedBytes{0x42}, NewUint(3), String("Hello, world!")})
	require.NoError(t, err)
	assert.Equal(t, "0xffff42000348656c6c6f2c20776f726c6421", hexutil.Encode(out))
}

func TestEncodePackedElementary(t *testing.T) {
	tests := []struct {
		typ  string
		val  Value
		want string
	}{
		{"bool", Bool(true), "0x01"},
		{"uint8", NewUint(255), "0xff"},
		{"int32", NewInt(-2), "0xfffffffe"},
		{"uint256", NewUint(1), "0x0000000000000000000000000000000000000000000000000000000000000001"},
		{"address", Address(fromAddr), "0x1111111111111111111111111111111111111111"},
		{"bytes4", FixedBytes{1, 2, 3, 4}, "0x01020304"},
		{"bytes", Bytes{0xca, 0xfe}, "0xcafe"},
		{"string", String(""), "0x"},
		{"uint8[]", Array{NewUint(1), NewUint(2)},
			"0x0000000000000000000000000000000000000000000000000000000000000001" +
				"0000000000000000000000000000000000000000000000000000000000000002"},
		{"bool[1]", Array{Bool(true)}, "0x0000000000000000000000000000000000000000000000000000000000000001"},
	}
	for _, tt := range tests {
		out, err := EncodePacked([]Type{MustNewType(tt.typ)}, []Value{tt.val})
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.want, hexutil.Encode(out), tt.typ)
	}
}

func TestEncodePackedErrors(t *testing.T) {
	pair, err := NewTupleType([]string{"a", "b"}, MustNewType("uint8"), MustNewType("bool"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		typ     Type
		val     Value
		wantErr error
	}{
		{"tuple", pair, Tuple{NewUint(1), Bool(true)}, ErrNotImplemented},
		{"nested array", MustNewType("uint8[][]"), Array{Array{NewUint(1)}}, ErrNotImplemented},
		{"dynamic elements", MustNewType("string[]"), Array{String("x")}, ErrNotImplemented},
		{"wrong variant", MustNewType("string"), Bytes{1}, ErrInvalidType},
		{"short fixed array", MustNewType("uint8[2]"), Array{NewUint(1)}, ErrArrayLengthMismatch},
		{"overflow", MustNewType("uint8"), NewUint(256), ErrInvalidType},
	}
	for _, tt := range tests {
		_, err := EncodePacked([]Type{tt.typ}, []Value{tt.val})
		assert.ErrorIs(t, err, tt.wantErr, tt.name)
	}
	_, err = EncodePacked([]Type{MustNewType("bool")}, nil)
	assert.ErrorIs(t, err, ErrArrayLengthMismatch)
}
