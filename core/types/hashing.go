// Copyright 2021 The go-ethereum Authors
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
	"sync"

	"github.com/sunyihoo/abicodec/crypto"
)

// hasherPool holds LegacyKeccak256 hashers for bloom bit selection.
// hasherPool 保存用于布隆过滤器位选择的 LegacyKeccak256 哈希器。
var hasherPool = sync.Pool{
	New: func() interface{} { return crypto.NewKeccakState() },
}

// keccakInto hashes data and reads the leading len(buf) bytes of the digest into buf.
func keccakInto(data []byte, buf []byte) {
	sha := hasherPool.Get().(crypto.KeccakState)
	sha.Reset()
	sha.Write(data)
	sha.Read(buf)
	hasherPool.Put(sha)
}
