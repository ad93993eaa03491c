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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/core/types"
	"github.com/sunyihoo/abicodec/crypto"
)

var (
	fromAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	toAddr   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func transferEvent(t *testing.T) Event {
	t.Helper()
	inputs := Arguments{
		{Name: "from", Type: MustNewType("address"), Indexed: true},
		{Name: "to", Type: MustNewType("address"), Indexed: true},
		{Name: "value", Type: MustNewType("uint256")},
	}
	return NewEvent("Transfer", "Transfer", false, inputs)
}

func transferLog(t *testing.T, event Event, value uint64) *types.Log {
	t.Helper()
	topics, err := EncodeEventTopics(event, []Value{Address(fromAddr), Address(toAddr)})
	require.NoError(t, err)
	data, err := event.Inputs.NonIndexed().Pack(NewUint(value))
	require.NoError(t, err)
	return types.NewLog(common.Address{}, topics, data)
}

func TestTransferEventID(t *testing.T) {
	event := transferEvent(t)
	assert.Equal(t, "Transfer(address,address,uint256)", event.Sig)
	assert.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), event.ID)
	assert.Equal(t, "event Transfer(address indexed from, address indexed to, uint256 value)", event.String())
}

func TestDecodeTransferLog(t *testing.T) {
	event := transferEvent(t)
	lg := transferLog(t, event, 1000)
	assert.Equal(t, common.BytesToHash(fromAddr.Bytes()), lg.Topics[1])

	for _, mode := range []DecodeMode{StrictMode, LenientMode} {
		fields, err := DecodeEventLog(event, lg, mode)
		require.NoError(t, err, mode.String())
		require.Len(t, fields, 3)

		assert.Equal(t, "from", fields[0].Name)
		assert.Equal(t, FieldDecoded, fields[0].State)
		assert.Equal(t, Address(fromAddr), fields[0].Value)
		assert.Equal(t, Address(toAddr), fields[1].Value)
		assert.True(t, fields[1].Indexed)
		assert.Equal(t, FieldDecoded, fields[2].State)
		assert.True(t, Equal(NewUint(1000), fields[2].Value))
	}
}

func TestDecodeOrderFollowsDeclaration(t *testing.T) {
	inputs := Arguments{
		{Name: "a", Type: MustNewType("uint8")},
		{Name: "b", Type: MustNewType("bool"), Indexed: true},
		{Name: "c", Type: MustNewType("string")},
		{Name: "d", Type: MustNewType("int32"), Indexed: true},
	}
	event := NewEvent("Mixed", "Mixed", false, inputs)
	topics, err := EncodeEventTopics(event, []Value{Bool(true), NewInt(-5)})
	require.NoError(t, err)
	data, err := inputs.NonIndexed().Pack(NewUint(7), String("seven"))
	require.NoError(t, err)

	fields, err := DecodeEventLog(event, &types.Log{Topics: topics, Data: data}, StrictMode)
	require.NoError(t, err)
	want := []Value{NewUint(7), Bool(true), String("seven"), NewInt(-5)}
	assert.True(t, ValuesEqual(want, DecodedValues(fields)), "%v", fields)
}

func TestIndexedDynamicIsHashOnly(t *testing.T) {
	pair, err := NewType("tuple", "", []ArgumentMarshaling{{Name: "x", Type: "uint256"}, {Name: "y", Type: "uint256"}})
	require.NoError(t, err)
	inputs := Arguments{
		{Name: "name", Type: MustNewType("string"), Indexed: true},
		{Name: "blob", Type: MustNewType("bytes"), Indexed: true},
		{Name: "point", Type: pair, Indexed: true},
	}
	event := NewEvent("Named", "Named", false, inputs)
	values := []Value{String("alice"), Bytes{1, 2, 3}, Tuple{NewUint(1), NewUint(2)}}

	topics, err := EncodeEventTopics(event, values)
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, crypto.Keccak256Hash([]byte("alice")), topics[1])
	assert.Equal(t, crypto.Keccak256Hash([]byte{1, 2, 3}), topics[2])
	assert.Equal(t, crypto.Keccak256Hash(append(word(1), word(2)...)), topics[3])

	fields, err := DecodeEventLog(event, &types.Log{Topics: topics}, StrictMode)
	require.NoError(t, err)
	for i, f := range fields {
		assert.Equal(t, FieldHashOnly, f.State, f.Name)
		assert.Nil(t, f.Value, f.Name)
		assert.Equal(t, topics[i+1], f.Hash, f.Name)
		assert.False(t, Equal(values[i], DecodedValues(fields)[i]), f.Name)
	}
}

func TestAnonymousEvent(t *testing.T) {
	inputs := Arguments{
		{Name: "who", Type: MustNewType("address"), Indexed: true},
		{Name: "n", Type: MustNewType("uint64")},
	}
	event := NewEvent("Anon", "Anon", true, inputs)
	topics, err := EncodeEventTopics(event, []Value{Address(fromAddr)})
	require.NoError(t, err)
	require.Len(t, topics, 1)

	data, err := inputs.NonIndexed().Pack(NewUint(3))
	require.NoError(t, err)
	fields, err := DecodeEventLog(event, &types.Log{Topics: topics, Data: data}, StrictMode)
	require.NoError(t, err)
	assert.Equal(t, Address(fromAddr), fields[0].Value)
	assert.True(t, Equal(NewUint(3), fields[1].Value))
}

func TestDecodeEventLogErrors(t *testing.T) {
	event := transferEvent(t)
	good := transferLog(t, event, 1)

	wrongID := *good
	wrongID.Topics = append([]common.Hash{common.HexToHash("0x01")}, good.Topics[1:]...)

	missingTopic := *good
	missingTopic.Topics = good.Topics[:2]

	extraTopic := *good
	extraTopic.Topics = append(append([]common.Hash{}, good.Topics...), common.Hash{})

	noData := *good
	noData.Data = nil

	badData := *good
	badData.Data = []byte{1, 2, 3}

	tests := []struct {
		name    string
		log     *types.Log
		strict  error
		lenient error
	}{
		{"no topics", &types.Log{Data: good.Data}, ErrSelectorTopicMismatch, ErrSelectorTopicMismatch},
		{"wrong selector", &wrongID, ErrSelectorTopicMismatch, ErrSelectorTopicMismatch},
		{"missing topic", &missingTopic, ErrTopicsMismatch, ErrTopicsMismatch},
		{"extra topic", &extraTopic, ErrTopicsMismatch, ErrTopicsMismatch},
		{"no data", &noData, ErrDecodeLogDataMismatch, nil},
		{"bad data", &badData, ErrDecodeLogDataMismatch, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := DecodeEventLog(event, tt.log, StrictMode)
			require.Nil(t, fields)
			require.True(t, errors.Is(err, tt.strict), "strict: got %v, want %v", err, tt.strict)

			fields, err = DecodeEventLog(event, tt.log, LenientMode)
			if tt.lenient != nil {
				require.Nil(t, fields)
				require.True(t, errors.Is(err, tt.lenient), "lenient: got %v, want %v", err, tt.lenient)
				return
			}
			require.NoError(t, err)
			require.Len(t, fields, 3)
			assert.Equal(t, FieldDecoded, fields[0].State)
			assert.Equal(t, FieldDecoded, fields[1].State)
		})
	}
}

// Lenient mode relaxes data decoding only, never the topic count.
func TestLenientRejectsTopicCountMismatch(t *testing.T) {
	inputs := Arguments{
		{Name: "from", Type: MustNewType("address"), Indexed: true},
		{Name: "value", Type: MustNewType("uint256")},
	}
	event := NewEvent("E", "E", false, inputs)
	data, err := inputs.NonIndexed().Pack(NewUint(1))
	require.NoError(t, err)

	for _, n := range []int{0, 2, 3} {
		topics := append([]common.Hash{event.ID}, make([]common.Hash, n)...)
		for _, mode := range []DecodeMode{StrictMode, LenientMode} {
			fields, err := DecodeEventLog(event, &types.Log{Topics: topics, Data: data}, mode)
			require.ErrorIs(t, err, ErrTopicsMismatch, "%d indexed topics, %v", n, mode)
			require.Nil(t, fields)
		}
	}
	fields, err := DecodeEventLog(event, &types.Log{Topics: []common.Hash{event.ID, {}}, Data: data}, LenientMode)
	require.NoError(t, err)
	require.Len(t, fields, 2)
}

func TestLenientMarksOnlyDataFieldsAbsent(t *testing.T) {
	event := transferEvent(t)
	lg := transferLog(t, event, 1)
	lg.Data = lg.Data[:16]

	_, err := DecodeEventLog(event, lg, StrictMode)
	require.ErrorIs(t, err, ErrDecodeLogDataMismatch)
	require.ErrorIs(t, err, ErrDataTooSmall)

	fields, err := DecodeEventLog(event, lg, LenientMode)
	require.NoError(t, err)
	assert.Equal(t, FieldDecoded, fields[0].State)
	assert.Equal(t, FieldDecoded, fields[1].State)
	assert.Equal(t, FieldAbsent, fields[2].State)
	assert.ErrorIs(t, fields[2].Err, ErrDataTooSmall)
	assert.Nil(t, DecodedValues(fields)[2])
	assert.Equal(t, "uint256 value = <absent>", fields[2].String())
}

func TestMakeAndParseTopics(t *testing.T) {
	event := transferEvent(t)
	indexed := event.Inputs.Indexed()

	topics, err := MakeTopics(indexed, []interface{}{fromAddr}, []interface{}{nil, toAddr})
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, []common.Hash{common.BytesToHash(fromAddr.Bytes())}, topics[0])
	assert.Equal(t, []common.Hash{common.BytesToHash(toAddr.Bytes())}, topics[1])

	values, err := ParseTopics(indexed, []common.Hash{topics[0][0], topics[1][0]})
	require.NoError(t, err)
	assert.True(t, ValuesEqual([]Value{Address(fromAddr), Address(toAddr)}, values))

	out := make(map[string]Value)
	require.NoError(t, ParseTopicsIntoMap(out, indexed, []common.Hash{topics[0][0], topics[1][0]}))
	assert.Equal(t, Address(toAddr), out["to"])

	_, err = ParseTopics(indexed, topics[0])
	require.ErrorIs(t, err, ErrTopicsMismatch)

	_, err = MakeTopics(indexed, nil, nil, nil)
	require.ErrorIs(t, err, ErrTopicsMismatch)
}

func TestParseTopicFieldsKeepsHashState(t *testing.T) {
	indexed := Arguments{
		{Name: "who", Type: MustNewType("address"), Indexed: true},
		{Name: "name", Type: MustNewType("string"), Indexed: true},
	}
	nameHash := crypto.Keccak256Hash([]byte("alice"))
	topics := []common.Hash{common.BytesToHash(fromAddr.Bytes()), nameHash}

	fields, err := ParseTopicFields(indexed, topics)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, FieldDecoded, fields[0].State)
	assert.Equal(t, Address(fromAddr), fields[0].Value)
	assert.Equal(t, FieldHashOnly, fields[1].State)
	assert.Nil(t, fields[1].Value)
	assert.Equal(t, nameHash, fields[1].Hash)

	// The flat forms only keep the hash bytes.
	values, err := ParseTopics(indexed, topics)
	require.NoError(t, err)
	assert.Equal(t, Bytes(nameHash.Bytes()), values[1])
	assert.Equal(t, values, DecodedValues(fields))

	_, err = ParseTopicFields(indexed, topics[:1])
	require.ErrorIs(t, err, ErrTopicsMismatch)
	_, err = ParseTopicFields(Arguments{{Name: "x", Type: MustNewType("uint8")}}, topics[:1])
	require.Error(t, err)
}

func TestGenIntType(t *testing.T) {
	inputs := Arguments{{Name: "delta", Type: MustNewType("int64"), Indexed: true}}
	topics, err := MakeTopics(inputs, []interface{}{int64(-2)})
	require.NoError(t, err)

	want, err := EncodeTopic(MustNewType("int64"), NewInt(-2))
	require.NoError(t, err)
	assert.Equal(t, want, topics[0][0])
}
