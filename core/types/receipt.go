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

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	// ReceiptStatusFailed 是交易执行失败时的状态码。
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	// ReceiptStatusSuccessful 是交易执行成功时的状态码。
	ReceiptStatusSuccessful = uint64(1)
)

// errBloomMismatch is returned when the logs bloom of a receipt does not cover its logs.
var errBloomMismatch = errors.New("receipt bloom does not match its logs")

// Receipt represents the results of a transaction, as far as the logs it emitted
// and their position in the chain are concerned.
// Receipt 表示交易的结果，这里只保留与其产生的日志以及日志在链上位置相关的字段。
type Receipt struct {
	// Consensus fields
	Status            uint64 `json:"status"`
	CumulativeGasUsed uint64 `json:"cumulativeGasUsed" gencodec:"required"`
	Bloom             Bloom  `json:"logsBloom"         gencodec:"required"`
	Logs              []*Log `json:"logs"              gencodec:"required"`

	// Implementation fields
	TxHash          common.Hash    `json:"transactionHash" gencodec:"required"`
	ContractAddress common.Address `json:"contractAddress"`
	GasUsed         uint64         `json:"gasUsed" gencodec:"required"`

	// Inclusion information
	BlockHash        common.Hash `json:"blockHash,omitempty"`
	BlockNumber      uint64      `json:"blockNumber,omitempty"`
	TransactionIndex uint        `json:"transactionIndex"`
}

type receiptMarshaling struct {
	Status            hexutil.Uint64 `json:"status"`
	CumulativeGasUsed hexutil.Uint64 `json:"cumulativeGasUsed"`
	Bloom             Bloom          `json:"logsBloom"`
	Logs              []*Log         `json:"logs"`
	TxHash            common.Hash    `json:"transactionHash"`
	ContractAddress   common.Address `json:"contractAddress"`
	GasUsed           hexutil.Uint64 `json:"gasUsed"`
	BlockHash         common.Hash    `json:"blockHash,omitempty"`
	BlockNumber       hexutil.Uint64 `json:"blockNumber,omitempty"`
	TransactionIndex  hexutil.Uint64 `json:"transactionIndex"`
}

// NewReceipt creates a barebone transaction receipt, copying the init fields.
// NewReceipt 创建一个基本的交易收据，复制初始化字段。
func NewReceipt(failed bool, cumulativeGasUsed uint64) *Receipt {
	r := &Receipt{CumulativeGasUsed: cumulativeGasUsed}
	if failed {
		r.Status = ReceiptStatusFailed
	} else {
		r.Status = ReceiptStatusSuccessful
	}
	return r
}

// MarshalJSON marshals as JSON.
func (r Receipt) MarshalJSON() ([]byte, error) {
	enc := receiptMarshaling{
		Status:            hexutil.Uint64(r.Status),
		CumulativeGasUsed: hexutil.Uint64(r.CumulativeGasUsed),
		Bloom:             r.Bloom,
		Logs:              r.Logs,
		TxHash:            r.TxHash,
		ContractAddress:   r.ContractAddress,
		GasUsed:           hexutil.Uint64(r.GasUsed),
		BlockHash:         r.BlockHash,
		BlockNumber:       hexutil.Uint64(r.BlockNumber),
		TransactionIndex:  hexutil.Uint64(r.TransactionIndex),
	}
	if enc.Logs == nil {
		enc.Logs = []*Log{}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON.
func (r *Receipt) UnmarshalJSON(input []byte) error {
	var dec struct {
		Status            *hexutil.Uint64 `json:"status"`
		CumulativeGasUsed *hexutil.Uint64 `json:"cumulativeGasUsed"`
		Bloom             *Bloom          `json:"logsBloom"`
		Logs              []*Log          `json:"logs"`
		TxHash            *common.Hash    `json:"transactionHash"`
		ContractAddress   *common.Address `json:"contractAddress"`
		GasUsed           *hexutil.Uint64 `json:"gasUsed"`
		BlockHash         *common.Hash    `json:"blockHash"`
		BlockNumber       *hexutil.Uint64 `json:"blockNumber"`
		TransactionIndex  *hexutil.Uint64 `json:"transactionIndex"`
	}
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Status != nil {
		r.Status = uint64(*dec.Status)
	}
	if dec.CumulativeGasUsed == nil {
		return errors.New("missing required field 'cumulativeGasUsed' for Receipt")
	}
	r.CumulativeGasUsed = uint64(*dec.CumulativeGasUsed)
	if dec.Bloom == nil {
		return errors.New("missing required field 'logsBloom' for Receipt")
	}
	r.Bloom = *dec.Bloom
	if dec.Logs == nil {
		return errors.New("missing required field 'logs' for Receipt")
	}
	r.Logs = dec.Logs
	if dec.TxHash == nil {
		return errors.New("missing required field 'transactionHash' for Receipt")
	}
	r.TxHash = *dec.TxHash
	if dec.ContractAddress != nil {
		r.ContractAddress = *dec.ContractAddress
	}
	if dec.GasUsed == nil {
		return errors.New("missing required field 'gasUsed' for Receipt")
	}
	r.GasUsed = uint64(*dec.GasUsed)
	if dec.BlockHash != nil {
		r.BlockHash = *dec.BlockHash
	}
	if dec.BlockNumber != nil {
		r.BlockNumber = uint64(*dec.BlockNumber)
	}
	if dec.TransactionIndex != nil {
		r.TransactionIndex = uint(*dec.TransactionIndex)
	}
	return nil
}

// VerifyBloom checks that every log of the receipt is covered by its logs bloom.
// VerifyBloom 检查收据的布隆过滤器是否覆盖了其全部日志。
func (r *Receipt) VerifyBloom() error {
	for _, log := range r.Logs {
		if !r.Bloom.MayContain(log.Address, log.Topics...) {
			return errBloomMismatch
		}
	}
	return nil
}

// Receipts implements DerivableList for receipts.
// Receipts 表示收据列表。
type Receipts []*Receipt

// Len returns the number of receipts in this list.
func (rs Receipts) Len() int { return len(rs) }

// Logs flattens the logs of all receipts in order.
func (rs Receipts) Logs() []*Log {
	var logs []*Log
	for _, r := range rs {
		logs = append(logs, r.Logs...)
	}
	return logs
}

// DeriveFields fills the receipts and their logs with information about the
// block they were included in, given the hashes of the transactions in order.
// DeriveFields 使用区块信息和交易哈希填充收据及其日志的派生字段。
func (rs Receipts) DeriveFields(hash common.Hash, number uint64, txHashes []common.Hash) error {
	if len(txHashes) != len(rs) {
		return errors.New("transaction and receipt count mismatch")
	}
	logIndex := uint(0)
	for i := 0; i < len(rs); i++ {
		rs[i].TxHash = txHashes[i]

		// block location fields
		// 区块字段
		rs[i].BlockHash = hash
		rs[i].BlockNumber = number
		rs[i].TransactionIndex = uint(i)

		// The used gas can be calculated based on previous r
		// 已使用的燃气可以根据前一个收据计算
		if i == 0 {
			rs[i].GasUsed = rs[i].CumulativeGasUsed
		} else {
			rs[i].GasUsed = rs[i].CumulativeGasUsed - rs[i-1].CumulativeGasUsed
		}

		// The derived log fields can simply be set from the block and transaction
		// 派生的日志字段可以简单地从区块和交易中设置
		for j := 0; j < len(rs[i].Logs); j++ {
			rs[i].Logs[j].BlockNumber = number
			rs[i].Logs[j].BlockHash = hash
			rs[i].Logs[j].TxHash = rs[i].TxHash
			rs[i].Logs[j].TxIndex = uint(i)
			rs[i].Logs[j].Index = logIndex
			logIndex++
		}
	}
	return nil
}
