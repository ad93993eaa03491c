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
	"strings"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/crypto"
)

// BuildSignature renders the canonical signature name(type1,type2,...) used to
// derive selectors and event topic hashes. Argument names are omitted, tuples
// are rendered as parenthesized component lists and arrays keep their suffix.
// BuildSignature 生成规范签名字符串，例如 "transfer(address,uint256)"。
func BuildSignature(name string, args Arguments) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	return fmt.Sprintf("%v(%v)", name, strings.Join(args.Types(), ",")), nil
}

// ComputeSelector returns the first 4 bytes of the Keccak-256 hash of sig.
// ComputeSelector 返回签名 Keccak-256 哈希的前 4 个字节。
func ComputeSelector(sig string) [4]byte {
	var selector [4]byte
	hash := defaultSigCache.Load().Hash(sig)
	copy(selector[:], hash[:4])
	return selector
}

// ComputeEventTopicHash returns the full Keccak-256 hash of sig, which is the
// first topic of every log emitted by a non-anonymous event.
func ComputeEventTopicHash(sig string) common.Hash {
	return defaultSigCache.Load().Hash(sig)
}

// signatureHash hashes sig without consulting any cache.
func signatureHash(sig string) common.Hash {
	return crypto.Keccak256Hash([]byte(sig))
}
