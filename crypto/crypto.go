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

// Package crypto provides the Keccak-256 primitive used for ABI selectors,
// event topic hashes and the hashing of dynamic indexed event parameters.
package crypto

import (
	"hash"
	"sync"

	"github.com/sunyihoo/abicodec/common"
	"golang.org/x/crypto/sha3"
)

// DigestLength sets the signature digest exact length
const DigestLength = 32

// Keccak-256
// - 以太坊使用 Keccak-256（SHA-3 家族的一种变体）作为主要哈希算法，而非 SHA-256。它生成 32 字节的哈希值，用于：
// - 在智能合约中计算函数选择器或事件签名。
// - 对动态类型的索引事件参数进行哈希。

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
//
// KeccakState 封装了 sha3.state。除了通常的哈希方法外，它还支持 Read 方法，
// 以从哈希状态中获取可变数量的数据。Read 比 Sum 更快，因为它不复制内部状态，但也会修改内部状态。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
// NewKeccakState 创建一个新的 KeccakState
func NewKeccakState() KeccakState {
	// NewLegacyKeccak256 表示使用“遗留”版本的 Keccak-256，与以太坊使用的原始 Keccak-256 实现保持一致。
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// hasherPool holds LegacyKeccak256 hashers for Keccak256Hash.
var hasherPool = sync.Pool{
	New: func() interface{} { return NewKeccakState() },
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
// 使用 KeccakState 对提供的输入数据进行哈希计算，并返回一个 32 字节的哈希值
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
// 计算并返回输入数据的 Keccak256 哈希值
func Keccak256(data ...[]byte) []byte {
	h := Keccak256Hash(data...)
	return h[:]
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
// 计算输入数据的 Keccak256 哈希值，并将其转换为内部的 Hash 数据结构返回
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := hasherPool.Get().(KeccakState)
	defer hasherPool.Put(d)

	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}
