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
	"encoding/json"
	"errors"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

// Log represents a contract log event. These events are generated by the LOG opcode and
// stored/indexed by the node.
// Log 表示合约日志事件。这些事件由 LOG 操作码生成，并由节点存储和索引。
type Log struct {
	// Consensus fields:
	// address of the contract that generated the event
	// 生成事件的合约地址
	Address common.Address `json:"address" gencodec:"required"`
	// list of topics provided by the contract.
	// 合约提供的主题列表，第一个通常是事件签名的哈希
	Topics []common.Hash `json:"topics" gencodec:"required"`
	// supplied by the contract, usually ABI-encoded
	// 由合约提供，通常是 ABI 编码的非索引参数
	Data []byte `json:"data" gencodec:"required"`

	// Derived fields. These fields are filled in by the node
	// but not secured by consensus.
	// block in which the transaction was included
	BlockNumber uint64 `json:"blockNumber"`
	// hash of the transaction
	TxHash common.Hash `json:"transactionHash"`
	// index of the transaction in the block
	TxIndex uint `json:"transactionIndex"`
	// hash of the block in which the transaction was included
	BlockHash common.Hash `json:"blockHash"`
	// index of the log in the block
	Index uint `json:"logIndex"`

	// The Removed field is true if this log was reverted due to a chain reorganisation.
	// You must pay attention to this field if you receive logs through a filter query.
	// 如果日志因链重组而被撤销，Removed 为 true。
	Removed bool `json:"removed"`
}

// NewLog creates a pending log carrying only the consensus fields.
func NewLog(address common.Address, topics []common.Hash, data []byte) *Log {
	return &Log{Address: address, Topics: topics, Data: data}
}

type logMarshaling struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	TxIndex     hexutil.Uint64 `json:"transactionIndex"`
	BlockHash   common.Hash    `json:"blockHash"`
	Index       hexutil.Uint64 `json:"logIndex"`
	Removed     bool           `json:"removed"`
}

// logUnmarshaling mirrors logMarshaling with pointers so that missing
// required fields can be told apart from zero values.
type logUnmarshaling struct {
	Address     *common.Address `json:"address"`
	Topics      []common.Hash   `json:"topics"`
	Data        *hexutil.Bytes  `json:"data"`
	BlockNumber *hexutil.Uint64 `json:"blockNumber"`
	TxHash      *common.Hash    `json:"transactionHash"`
	TxIndex     *hexutil.Uint64 `json:"transactionIndex"`
	BlockHash   *common.Hash    `json:"blockHash"`
	Index       *hexutil.Uint64 `json:"logIndex"`
	Removed     *bool           `json:"removed"`
}

// MarshalJSON marshals as JSON.
func (l Log) MarshalJSON() ([]byte, error) {
	enc := logMarshaling{
		Address:     l.Address,
		Topics:      l.Topics,
		Data:        l.Data,
		BlockNumber: hexutil.Uint64(l.BlockNumber),
		TxHash:      l.TxHash,
		TxIndex:     hexutil.Uint64(l.TxIndex),
		BlockHash:   l.BlockHash,
		Index:       hexutil.Uint64(l.Index),
		Removed:     l.Removed,
	}
	if enc.Topics == nil {
		enc.Topics = []common.Hash{}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON.
func (l *Log) UnmarshalJSON(input []byte) error {
	var dec logUnmarshaling
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Address == nil {
		return errors.New("missing required field 'address' for Log")
	}
	l.Address = *dec.Address
	if dec.Topics == nil {
		return errors.New("missing required field 'topics' for Log")
	}
	l.Topics = dec.Topics
	if dec.Data == nil {
		return errors.New("missing required field 'data' for Log")
	}
	l.Data = *dec.Data
	if dec.BlockNumber != nil {
		l.BlockNumber = uint64(*dec.BlockNumber)
	}
	if dec.TxHash != nil {
		l.TxHash = *dec.TxHash
	}
	if dec.TxIndex != nil {
		l.TxIndex = uint(*dec.TxIndex)
	}
	if dec.BlockHash != nil {
		l.BlockHash = *dec.BlockHash
	}
	if dec.Index != nil {
		l.Index = uint(*dec.Index)
	}
	if dec.Removed != nil {
		l.Removed = *dec.Removed
	}
	return nil
}

// MatchesAddress reports whether the log was emitted by one of addresses.
// An empty list matches every address.
func (l *Log) MatchesAddress(addresses []common.Address) bool {
	if len(addresses) == 0 {
		return true
	}
	for _, addr := range addresses {
		if addr == l.Address {
			return true
		}
	}
	return false
}

// MatchesTopics reports whether the log satisfies a positional topic filter.
// Each position lists acceptable hashes; an empty position matches anything.
// 每个位置是一个可接受哈希的列表（OR），位置之间是 AND 关系。
func (l *Log) MatchesTopics(topics [][]common.Hash) bool {
	if len(topics) > len(l.Topics) {
		return false
	}
	for i, sub := range topics {
		if len(sub) == 0 {
			continue
		}
		match := false
		for _, topic := range sub {
			if l.Topics[i] == topic {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

// FilterLogs returns the logs matching both the address list and the topic filter.
func FilterLogs(logs []*Log, addresses []common.Address, topics [][]common.Hash) []*Log {
	var ret []*Log
	for _, log := range logs {
		if !log.MatchesAddress(addresses) {
			continue
		}
		if !log.MatchesTopics(topics) {
			continue
		}
		ret = append(ret, log)
	}
	return ret
}
