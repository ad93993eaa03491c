// Copyright 2016 The go-ethereum Authors
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
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/abicodec/common"
)

// Error represents a custom error defined in the ABI, e.g.
// error InsufficientBalance(uint256 available, uint256 required).
// Error 表示在 ABI 中定义的自定义错误。
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g. error foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string

	// ID returns the canonical representation of the error's signature used by the
	// abi definition to identify event names and types.
	ID common.Hash
}

// NewError creates a new Error instance with the given name and inputs.
// It precomputes the string and signature representations, and calculates the
// unique ID based on the signature.
// NewError 使用给定的名称和输入参数创建一个新的 Error 实例，并根据签名计算唯一的 ID。
func NewError(name string, inputs Arguments) Error {
	inputs, str := describeArguments("error", name, inputs)
	sig := fmt.Sprintf("%v(%v)", name, strings.Join(inputs.Types(), ","))

	return Error{
		Name:   name,
		Inputs: inputs,
		str:    str,
		Sig:    sig,
		ID:     ComputeEventTopicHash(sig),
	}
}

// String returns the string representation of the error.
// String 返回错误的字符串表示形式。
func (e Error) String() string {
	return e.str
}

// Selector returns the 4 byte identifier prefixed to revert data raising e.
func (e Error) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], e.ID[:4])
	return sel
}

// Unpack decodes revert data raised by e into the error's inputs.
// It first checks that the data starts with the error's selector.
// Unpack 将提供的数据解码为错误的输入参数。
// 它首先检查数据是否匹配错误的标识符（前 4 字节），然后将剩余数据解码为错误的输入。
func (e *Error) Unpack(data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: insufficient data for unpacking: have %d, want at least 4", ErrInvalidLength, len(data))
	}
	if !bytes.Equal(data[:4], e.ID[:4]) {
		return nil, fmt.Errorf("%w: invalid identifier, have %#x want %#x", ErrSelectorTopicMismatch, data[:4], e.ID[:4])
	}
	return e.Inputs.Unpack(data[4:])
}
