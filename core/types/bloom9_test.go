// Copyright 2014 The go-ethereum Authors
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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/crypto"
)

func TestBloom(t *testing.T) {
	positive := []string{
		"testtest",
		"test",
		"hallo",
		"other",
	}
	negative := []string{
		"tes",
		"lo",
	}

	var bloom Bloom
	for _, data := range positive {
		bloom.Add([]byte(data))
	}

	for _, data := range positive {
		if !bloom.Test([]byte(data)) {
			t.Error("expected", data, "to test true")
		}
	}
	for _, data := range negative {
		if bloom.Test([]byte(data)) {
			t.Error("did not expect", data, "to test true")
		}
	}
}

func TestBloomSetsThreeBits(t *testing.T) {
	var bloom Bloom
	bloom.Add([]byte("transfer"))

	bits := 0
	for _, b := range bloom {
		for ; b != 0; b &= b - 1 {
			bits++
		}
	}
	require.LessOrEqual(t, bits, 3)
	require.Greater(t, bits, 0)
}

func TestCreateBloom(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	transfer := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	logs := []*Log{
		NewLog(addr, []common.Hash{transfer, common.HexToHash("0x01")}, nil),
	}
	bloom := CreateBloom(logs)

	require.True(t, BloomLookup(bloom, addr))
	require.True(t, BloomLookup(bloom, transfer))
	require.True(t, bloom.MayContain(addr, transfer))
	require.False(t, CreateBloom(nil).MayContain(addr))
}

func TestBloomTextRoundTrip(t *testing.T) {
	var bloom Bloom
	bloom.Add([]byte("hallo"))

	enc, err := bloom.MarshalText()
	require.NoError(t, err)
	require.Len(t, enc, 2+2*BloomByteLength)

	var dec Bloom
	require.NoError(t, dec.UnmarshalText(enc))
	require.Equal(t, bloom, dec)
	require.Equal(t, bloom, BytesToBloom(bloom.Bytes()))
	require.Panics(t, func() { BytesToBloom(make([]byte, BloomByteLength+1)) })
}
