// Copyright 2015 The go-ethereum Authors
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
	"math/big"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/core/types"
)

const tokenJSON = `[
	{"type": "constructor", "inputs": [{"name": "owner", "type": "address"}]},
	{"type": "function", "name": "transfer", "stateMutability": "nonpayable",
	 "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}],
	 "outputs": [{"name": "", "type": "bool"}]},
	{"type": "function", "name": "balanceOf", "stateMutability": "view",
	 "inputs": [{"name": "who", "type": "address"}],
	 "outputs": [{"name": "balance", "type": "uint256"}]},
	{"type": "function", "name": "deposit", "stateMutability": "payable", "inputs": [], "outputs": []},
	{"type": "function", "name": "foo", "inputs": [{"name": "a", "type": "uint256"}]},
	{"type": "function", "name": "foo", "inputs": [{"name": "a", "type": "string"}]},
	{"type": "event", "name": "Transfer", "inputs": [
		{"name": "from", "type": "address", "indexed": true},
		{"name": "to", "type": "address", "indexed": true},
		{"name": "value", "type": "uint256", "indexed": false}]},
	{"type": "error", "name": "InsufficientBalance", "inputs": [
		{"name": "available", "type": "uint256"},
		{"name": "required", "type": "uint256"}]},
	{"type": "fallback", "stateMutability": "nonpayable"},
	{"type": "receive", "stateMutability": "payable"}
]`

func tokenABI(t *testing.T) ABI {
	t.Helper()
	parsed, err := JSON(strings.NewReader(tokenJSON))
	require.NoError(t, err)
	return parsed
}

func TestReader(t *testing.T) {
	abi := tokenABI(t)

	require.Len(t, abi.Methods, 5)
	assert.Equal(t, "function transfer(address to, uint256 amount) returns(bool)", abi.Methods["transfer"].String())
	assert.Equal(t, "function balanceOf(address who) view returns(uint256 balance)", abi.Methods["balanceOf"].String())
	assert.True(t, abi.Methods["balanceOf"].IsConstant())
	assert.True(t, abi.Methods["deposit"].IsPayable())
	assert.Equal(t, "foo(uint256)", abi.Methods["foo"].Sig)
	assert.Equal(t, "foo(string)", abi.Methods["foo0"].Sig)
	assert.Equal(t, "foo", abi.Methods["foo0"].RawName)

	assert.Equal(t, "constructor(address owner) returns()", abi.Constructor.String())
	assert.Nil(t, abi.Constructor.ID)
	assert.True(t, abi.HasFallback())
	assert.True(t, abi.HasReceive())
	assert.Equal(t, NormalFunction, abi.Methods["transfer"].Type)
	assert.Equal(t, Constructor, abi.Constructor.Type)
	assert.Equal(t, Fallback, abi.Fallback.Type)
	assert.Equal(t, Receive, abi.Receive.Type)

	assert.Equal(t, "0xa9059cbb", hexutil.Encode(abi.Methods["transfer"].ID))
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", abi.Events["Transfer"].ID.Hex())
	assert.Equal(t, "InsufficientBalance(uint256,uint256)", abi.Errors["InsufficientBalance"].Sig)
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"two fallbacks", `[{"type":"fallback"},{"type":"fallback"}]`},
		{"two receives", `[{"type":"receive","stateMutability":"payable"},{"type":"receive","stateMutability":"payable"}]`},
		{"nonpayable receive", `[{"type":"receive","stateMutability":"nonpayable"}]`},
		{"unknown entry", `[{"type":"modifier","name":"onlyOwner"}]`},
		{"bad argument type", `[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint7"}]}]`},
		{"not an array", `{"type":"function"}`},
	}
	for _, tt := range tests {
		_, err := JSON(strings.NewReader(tt.json))
		assert.Error(t, err, tt.name)
	}
}

func TestPackAndDecodeCall(t *testing.T) {
	abi := tokenABI(t)

	data, err := abi.Pack("transfer", toAddr, big.NewInt(1000))
	require.NoError(t, err)
	want := hexutil.MustDecode("0xa9059cbb" +
		"0000000000000000000000002222222222222222222222222222222222222222" +
		"00000000000000000000000000000000000000000000000000000000000003e8")
	require.Equal(t, want, data, "packed:\n%s", spew.Sdump(data))

	method, values, err := abi.DecodeCall(data)
	require.NoError(t, err)
	assert.Equal(t, "transfer", method.Name)
	assert.True(t, ValuesEqual([]Value{Address(toAddr), NewUint(1000)}, values), "%v", values)

	viaValues, err := abi.PackValues("transfer", Address(toAddr), NewUint(1000))
	require.NoError(t, err)
	assert.Equal(t, data, viaValues)

	// Overloads resolve by selector.
	data, err = abi.Pack("foo0", "hello")
	require.NoError(t, err)
	method, values, err = abi.DecodeCall(data)
	require.NoError(t, err)
	assert.Equal(t, "foo0", method.Name)
	assert.Equal(t, []Value{String("hello")}, values)

	_, err = abi.Pack("transfer", toAddr)
	assert.ErrorIs(t, err, ErrArrayLengthMismatch)
	_, err = abi.Pack("transfer", toAddr, "1000")
	assert.ErrorIs(t, err, ErrInvalidType)
	_, err = abi.Pack("missing")
	assert.Error(t, err)

	_, _, err = abi.DecodeCall([]byte{0xde, 0xad})
	assert.Error(t, err)
	_, _, err = abi.DecodeCall(hexutil.MustDecode("0xdeadbeef"))
	assert.Error(t, err)
}

func TestPackConstructor(t *testing.T) {
	abi := tokenABI(t)
	data, err := abi.Pack("", fromAddr)
	require.NoError(t, err)
	assert.Equal(t, common.LeftPadBytes(fromAddr.Bytes(), 32), data)

	values, err := abi.Constructor.DecodeCall(data)
	require.NoError(t, err)
	assert.Equal(t, []Value{Address(fromAddr)}, values)
}

func TestMethodDecodeCallErrors(t *testing.T) {
	transfer := tokenABI(t).Methods["transfer"]

	_, err := transfer.DecodeCall([]byte{0xa9, 0x05})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = transfer.DecodeCall(hexutil.MustDecode("0x70a08231"))
	assert.ErrorIs(t, err, ErrSelectorTopicMismatch)

	_, err = transfer.DecodeCall(transfer.ID)
	assert.ErrorIs(t, err, ErrZeroData)
}

func TestUnpackOutputs(t *testing.T) {
	abi := tokenABI(t)

	values, err := abi.Unpack("balanceOf", word(42))
	require.NoError(t, err)
	assert.True(t, ValuesEqual([]Value{NewUint(42)}, values))

	out := make(map[string]Value)
	require.NoError(t, abi.UnpackIntoMap(out, "balanceOf", word(42)))
	assert.True(t, Equal(NewUint(42), out["balance"]))

	_, err = abi.Unpack("balanceOf", word(42)[:31])
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = abi.Unpack("nothing", word(42))
	assert.Error(t, err)

	// Events and errors are looked up by name as well.
	values, err = abi.Unpack("InsufficientBalance", append(word(1), word(2)...))
	require.NoError(t, err)
	assert.True(t, ValuesEqual([]Value{NewUint(1), NewUint(2)}, values))
}

func TestABIDecodeLog(t *testing.T) {
	abi := tokenABI(t)
	event := abi.Events["Transfer"]
	lg := transferLog(t, event, 7)

	found, fields, err := abi.DecodeLog(lg, StrictMode)
	require.NoError(t, err)
	assert.Equal(t, "Transfer", found.Name)
	assert.True(t, ValuesEqual([]Value{Address(fromAddr), Address(toAddr), NewUint(7)}, DecodedValues(fields)))

	_, _, err = abi.DecodeLog(&types.Log{}, StrictMode)
	assert.ErrorIs(t, err, ErrSelectorTopicMismatch)
	_, _, err = abi.DecodeLog(&types.Log{Topics: []common.Hash{{1}}}, StrictMode)
	assert.Error(t, err)
}

func TestUnpackRevert(t *testing.T) {
	revert, err := EncodeFunctionData(ComputeSelector("Error(string)"), args(t, "string"), []Value{String("boom")})
	require.NoError(t, err)
	panicData := func(code uint64) []byte {
		data, err := EncodeFunctionData(ComputeSelector("Panic(uint256)"), args(t, "uint256"), []Value{NewUint(code)})
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{"revert string", revert, "boom", nil},
		{"assert", panicData(0x01), "assert(false)", nil},
		{"overflow", panicData(0x11), "arithmetic underflow or overflow", nil},
		{"unknown panic", panicData(0x99), "unknown panic code: 0x99", nil},
		{"short", []byte{0x08, 0xc3}, "", ErrInvalidLength},
		{"unknown selector", hexutil.MustDecode("0xdeadbeef"), "", ErrInvalidType},
		{"truncated", revert[:20], "", ErrDataTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnpackRevert(tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorByData(t *testing.T) {
	abi := tokenABI(t)
	custom := abi.Errors["InsufficientBalance"]
	sel := custom.Selector()

	data, err := EncodeFunctionData(sel, custom.Inputs, []Value{NewUint(10), NewUint(20)})
	require.NoError(t, err)

	found, values, err := abi.ErrorByData(data)
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance", found.Name)
	assert.True(t, ValuesEqual([]Value{NewUint(10), NewUint(20)}, values))

	_, _, err = abi.ErrorByData(data[:3])
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, _, err = abi.ErrorByData(hexutil.MustDecode("0x08c379a0"))
	assert.Error(t, err)

	_, err = custom.Unpack(hexutil.MustDecode("0x08c379a0"))
	assert.ErrorIs(t, err, ErrSelectorTopicMismatch)
}

func TestResolveNameConflict(t *testing.T) {
	used := map[string]bool{"send": true, "send0": true}
	got := ResolveNameConflict("send", func(s string) bool { return used[s] })
	assert.Equal(t, "send1", got)
	assert.Equal(t, "recv", ResolveNameConflict("recv", func(s string) bool { return used[s] }))
}
