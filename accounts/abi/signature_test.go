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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/crypto"
)

func TestComputeSelector(t *testing.T) {
	tests := []struct {
		sig  string
		want string
	}{
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"balanceOf(address)", "0x70a08231"},
		{"approve(address,uint256)", "0x095ea7b3"},
		{"Error(string)", "0x08c379a0"},
		{"Panic(uint256)", "0x4e487b71"},
	}
	for _, tt := range tests {
		sel := ComputeSelector(tt.sig)
		assert.Equal(t, tt.want, hexutil.Encode(sel[:]), tt.sig)
	}
}

func TestComputeEventTopicHash(t *testing.T) {
	got := ComputeEventTopicHash("Transfer(address,address,uint256)")
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", got.Hex())
	assert.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), got)
}

func TestBuildSignature(t *testing.T) {
	point, err := NewType("tuple[]", "", []ArgumentMarshaling{{Name: "x", Type: "uint8"}, {Name: "y", Type: "bytes"}})
	require.NoError(t, err)

	tests := []struct {
		name string
		args Arguments
		want string
	}{
		{"transfer", args(t, "address", "uint256"), "transfer(address,uint256)"},
		{"ping", nil, "ping()"},
		{"sized", args(t, "uint256", "int8", "bytes32[2]"), "sized(uint256,int8,bytes32[2])"},
		{"draw", Arguments{{Name: "points", Type: point}, {Type: MustNewType("string")}}, "draw((uint8,bytes)[],string)"},
	}
	for _, tt := range tests {
		sig, err := BuildSignature(tt.name, tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, sig)
	}
	_, err = BuildSignature("", args(t, "uint256"))
	require.ErrorIs(t, err, ErrInvalidName)

	// Unsized aliases never reach a signature; the type parser refuses them.
	for _, alias := range []string{"uint", "int", "uint[]", "int[2]"} {
		_, err := NewType(alias, "", nil)
		require.ErrorIs(t, err, ErrInvalidType, alias)
	}
}

func TestSigCacheStats(t *testing.T) {
	c := NewSigCache(1024 * 1024)
	want := signatureHash("transfer(address,uint256)")

	assert.Equal(t, want, c.Hash("transfer(address,uint256)"))
	assert.Equal(t, want, c.Hash("transfer(address,uint256)"))

	lookups, misses, entries := c.Stats()
	assert.Equal(t, uint64(2), lookups)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, uint64(1), entries)

	c.Reset()
	_, _, entries = c.Stats()
	assert.Zero(t, entries)
	assert.Equal(t, want, c.Hash("transfer(address,uint256)"))
}

func TestNilSigCache(t *testing.T) {
	var c *SigCache
	assert.Nil(t, NewSigCache(0))
	assert.Equal(t, signatureHash("f()"), c.Hash("f()"))
	lookups, misses, entries := c.Stats()
	assert.Zero(t, lookups+misses+entries)
	c.Reset()
}

func TestSetSigCache(t *testing.T) {
	c := NewSigCache(1024 * 1024)
	SetSigCache(c)
	defer SetSigCache(NewSigCache(DefaultSigCacheSize))

	ComputeSelector("balanceOf(address)")
	ComputeEventTopicHash("balanceOf(address)")
	lookups, misses, _ := c.Stats()
	assert.Equal(t, uint64(2), lookups)
	assert.Equal(t, uint64(1), misses)

	SetSigCache(nil)
	sel := ComputeSelector("balanceOf(address)")
	assert.Equal(t, "0x70a08231", hexutil.Encode(sel[:]))
}

func TestSigCacheConcurrent(t *testing.T) {
	c := NewSigCache(1024 * 1024)
	sigs := make([]string, 16)
	for i := range sigs {
		sigs[i] = fmt.Sprintf("f%d(uint256)", i)
	}
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, sig := range sigs {
				if got := c.Hash(sig); got != signatureHash(sig) {
					t.Errorf("%s: hash mismatch %x", sig, got)
				}
			}
		}()
	}
	wg.Wait()

	_, _, entries := c.Stats()
	assert.Equal(t, uint64(len(sigs)), entries)
}

func TestErrorSelector(t *testing.T) {
	e := NewError("InsufficientBalance", args(t, "uint256", "uint256"))
	assert.Equal(t, "InsufficientBalance(uint256,uint256)", e.Sig)
	assert.Equal(t, "error InsufficientBalance(uint256 arg0, uint256 arg1)", e.String())
	assert.Equal(t, ComputeSelector(e.Sig), e.Selector())
	assert.Equal(t, common.Hash(ComputeEventTopicHash(e.Sig)), e.ID)
}
