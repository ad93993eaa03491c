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
	"sync/atomic"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/log"
)

// DefaultSigCacheSize is the capacity in bytes of the package level signature cache.
const DefaultSigCacheSize = 4 * 1024 * 1024

var defaultSigCache atomic.Pointer[SigCache]

func init() {
	defaultSigCache.Store(NewSigCache(DefaultSigCacheSize))
}

// SetSigCache replaces the cache used by ComputeSelector and
// ComputeEventTopicHash. A nil cache disables caching.
func SetSigCache(c *SigCache) {
	defaultSigCache.Store(c)
}

// SigCache maps canonical signatures to their Keccak-256 hash. It is safe for
// concurrent use: racing writers store the same value for the same key. The
// cache never changes results, it only avoids rehashing.
// SigCache 将规范签名映射到其 Keccak-256 哈希，可安全地并发使用。
type SigCache struct {
	hashes *fastcache.Cache // GC friendly memory cache of signature hashes
}

// NewSigCache creates a cache holding up to size bytes. A non-positive size
// returns nil, which is a valid cache that never stores anything.
func NewSigCache(size int) *SigCache {
	if size <= 0 {
		return nil
	}
	return &SigCache{hashes: fastcache.New(size)}
}

// Hash returns the Keccak-256 hash of sig, computing it on a miss.
func (c *SigCache) Hash(sig string) common.Hash {
	if c == nil {
		return signatureHash(sig)
	}
	if enc, ok := c.hashes.HasGet(nil, []byte(sig)); ok && len(enc) == common.HashLength {
		return common.BytesToHash(enc)
	}
	hash := signatureHash(sig)
	c.hashes.Set([]byte(sig), hash[:])
	log.Trace("Cached signature hash", "sig", sig, "hash", hash)
	return hash
}

// Stats reports the number of lookups, misses and stored entries.
func (c *SigCache) Stats() (lookups, misses, entries uint64) {
	if c == nil {
		return 0, 0, 0
	}
	var s fastcache.Stats
	c.hashes.UpdateStats(&s)
	return s.GetCalls, s.Misses, s.EntriesCount
}

// Reset drops every cached entry.
func (c *SigCache) Reset() {
	if c != nil {
		c.hashes.Reset()
	}
}
