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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
)

func TestDecodeErrors(t *testing.T) {
	helloWorld, err := EncodeParameters(args(t, "string"), []Value{String("hello world")})
	require.NoError(t, err)

	hugeOffset := append(bytes.Repeat([]byte{0xff}, 32), make([]byte, 32)...)
	hugeLength := append(word(32), bytes.Repeat([]byte{0xff}, 32)...)
	badUtf8 := append(append(word(32), word(2)...), common.RightPadBytes([]byte{0xc3, 0x28}, 32)...)
	manyElems := append(word(32), word(1<<20)...)

	tests := []struct {
		name  string
		types []string
		data  []byte
		want  error
	}{
		{"empty", []string{"uint256"}, nil, ErrZeroData},
		{"short head", []string{"uint256"}, make([]byte, 20), ErrDataTooSmall},
		{"short head two args", []string{"uint256", "uint256"}, make([]byte, 40), ErrDataTooSmall},
		{"truncated payload", []string{"string"}, helloWorld[:70], ErrOutOfBounds},
		{"truncated length", []string{"string"}, helloWorld[:40], ErrOutOfBounds},
		{"offset past end", []string{"bytes"}, hugeOffset, ErrOutOfBounds},
		{"length past end", []string{"bytes"}, hugeLength, ErrOutOfBounds},
		{"array length past end", []string{"uint256[]"}, manyElems, ErrOutOfBounds},
		{"invalid utf8", []string{"string"}, badUtf8, ErrInvalidUtf8},
		{"bool not 0 or 1", []string{"bool"}, word(2), ErrInvalidType},
		{"uint8 overflow", []string{"uint8"}, word(256), ErrInvalidType},
		{"int8 overflow", []string{"int8"}, word(128), ErrInvalidType},
		{"dirty address", []string{"address"}, bytes.Repeat([]byte{0x01}, 32), ErrInvalidType},
		{"dirty function", []string{"function"}, bytes.Repeat([]byte{0x01}, 32), ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := DecodeParameters(tt.data, args(t, tt.types...))
			require.Nil(t, values)
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

// Types built by hand skip the parser's size checks.
func TestDecodeHugeArray(t *testing.T) {
	u256 := MustNewType("uint256")
	inner := Type{T: ArrayTy, Size: 1 << 59, Elem: &u256}
	outer := Type{T: ArrayTy, Size: 1 << 59, Elem: &inner}

	tests := []struct {
		name string
		args Arguments
		data []byte
		want error
	}{
		{"nested fixed arrays", Arguments{{Type: outer}}, make([]byte, 64), ErrDataTooSmall},
		{"fixed array", Arguments{{Type: inner}}, make([]byte, 64), ErrDataTooSmall},
		{"after a word", Arguments{{Type: u256}, {Type: outer}}, make([]byte, 96), ErrDataTooSmall},
		{"inside a slice", Arguments{{Type: Type{T: SliceTy, Elem: &inner}}}, append(word(32), word(1)...), ErrOutOfBounds},
		{"negative size", Arguments{{Type: Type{T: ArrayTy, Size: -1, Elem: &u256}}}, make([]byte, 64), ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.args.Unpack(tt.data)
			require.Nil(t, values)
			require.ErrorIs(t, err, tt.want)
		})
	}

	// Zero sized elements take no data but are still bounded by count.
	empty := Type{T: TupleTy}
	_, err := Arguments{{Type: u256}, {Type: Type{T: ArrayTy, Size: 1 << 62, Elem: &empty}}}.Unpack(word(1))
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeNoArguments(t *testing.T) {
	values, err := DecodeParameters(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestReadInteger(t *testing.T) {
	v, err := ReadInteger(MustNewType("int16"), bytes.Repeat([]byte{0xff}, 32))
	require.NoError(t, err)
	assert.True(t, Equal(NewInt(-1), v))

	// The sign must be extended through the whole word: 0xffff alone is
	// 65535, which int16 cannot hold.
	dirty := append(make([]byte, 30), 0xff, 0xff)
	_, err = ReadInteger(MustNewType("int16"), dirty)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestUnpackIntoMap(t *testing.T) {
	arguments := Arguments{
		{Name: "owner", Type: MustNewType("address")},
		{Name: "amount", Type: MustNewType("uint128")},
	}
	owner := common.HexToAddress("0x0000000000000000000000000000000000000fee")
	enc, err := arguments.Pack(Address(owner), NewUint(99))
	require.NoError(t, err)

	out := make(map[string]Value)
	require.NoError(t, arguments.UnpackIntoMap(out, enc))
	assert.Equal(t, Address(owner), out["owner"])
	assert.True(t, Equal(NewUint(99), out["amount"]))
	require.Error(t, arguments.UnpackIntoMap(nil, enc))
}

// FuzzDecodeParameters makes sure arbitrary input never panics the decoder
// and that whatever decodes re-encodes to something that decodes the same.
func FuzzDecodeParameters(f *testing.F) {
	enc, _ := EncodeParameters(Arguments{
		{Type: MustNewType("string[]")},
		{Type: MustNewType("uint8")},
	}, []Value{Array{String("a"), String("b")}, NewUint(1)})
	f.Add(enc)
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0xff}, 96))

	arguments := Arguments{
		{Type: MustNewType("string[]")},
		{Type: MustNewType("uint8")},
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		values, err := DecodeParameters(data, arguments)
		if err != nil {
			return
		}
		again, err := EncodeParameters(arguments, values)
		if errors.Is(err, ErrOutOfMemory) {
			// Shared tails can decode into values larger than the limit.
			return
		}
		if err != nil {
			t.Fatalf("re-encoding decoded values failed: %v", err)
		}
		decoded, err := DecodeParameters(again, arguments)
		if err != nil {
			t.Fatalf("decoding canonical encoding failed: %v", err)
		}
		if !ValuesEqual(values, decoded) {
			t.Fatalf("round trip mismatch: %v != %v", values, decoded)
		}
	})
}
