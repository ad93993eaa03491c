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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
)

func TestDeriveFields(t *testing.T) {
	receipts := Receipts{
		NewReceipt(false, 21000),
		NewReceipt(true, 50000),
	}
	receipts[0].Logs = []*Log{NewLog(testAddrA, []common.Hash{topicX}, nil)}
	receipts[1].Logs = []*Log{
		NewLog(testAddrB, []common.Hash{topicY}, nil),
		NewLog(testAddrB, []common.Hash{topicZ}, nil),
	}
	blockHash := common.HexToHash("0xb1")
	txHashes := []common.Hash{common.HexToHash("0x11"), common.HexToHash("0x22")}

	require.NoError(t, receipts.DeriveFields(blockHash, 7, txHashes))
	require.Error(t, receipts.DeriveFields(blockHash, 7, txHashes[:1]))

	assert.Equal(t, ReceiptStatusSuccessful, receipts[0].Status)
	assert.Equal(t, ReceiptStatusFailed, receipts[1].Status)
	assert.Equal(t, uint64(21000), receipts[0].GasUsed)
	assert.Equal(t, uint64(29000), receipts[1].GasUsed)

	logs := receipts.Logs()
	require.Len(t, logs, 3)
	for i, log := range logs {
		assert.Equal(t, uint(i), log.Index)
		assert.Equal(t, blockHash, log.BlockHash)
		assert.Equal(t, uint64(7), log.BlockNumber)
	}
	assert.Equal(t, txHashes[1], logs[2].TxHash)
	assert.Equal(t, uint(1), logs[2].TxIndex)
}

func TestReceiptBloomAndJSON(t *testing.T) {
	r := NewReceipt(false, 100)
	r.GasUsed = 100
	r.Logs = []*Log{NewLog(testAddrA, []common.Hash{topicX}, []byte{1})}
	require.Error(t, r.VerifyBloom())

	r.Bloom = CreateBloom(r.Logs)
	require.NoError(t, r.VerifyBloom())

	enc, err := json.Marshal(r)
	require.NoError(t, err)
	var dec Receipt
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, *r, dec)

	err = json.Unmarshal([]byte(`{"cumulativeGasUsed":"0x1"}`), &dec)
	require.EqualError(t, err, "missing required field 'logsBloom' for Receipt")
}
