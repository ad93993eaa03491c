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
	"errors"
	"fmt"
)

// Error kinds returned by the codec. Call sites wrap them with context, so
// match with errors.Is.
var (
	// ErrArrayLengthMismatch is returned when the number of values does not match
	// the number of arguments, or a fixed array receives the wrong element count.
	ErrArrayLengthMismatch = errors.New("abi: array length mismatch")

	// ErrInvalidType is returned when a value does not fit its type descriptor, or
	// a word read from the input is not a valid encoding of its type.
	// ErrInvalidType 在值与类型描述不符，或者输入中的字不是该类型的合法编码时返回。
	ErrInvalidType = errors.New("abi: invalid type")

	// ErrInvalidLength is returned for call data shorter than a selector.
	ErrInvalidLength = errors.New("abi: invalid length")

	// ErrDataTooSmall is returned when the input is shorter than the head region
	// of the expected arguments.
	ErrDataTooSmall = errors.New("abi: data too small")

	// ErrZeroData is returned when arguments are expected but the input is empty.
	ErrZeroData = errors.New("abi: attempting to unmarshal an empty string while arguments are expected")

	// ErrOutOfBounds is returned whenever a read, offset or length points past the
	// end of the input.
	// ErrOutOfBounds 在读取、偏移量或长度越过输入末尾时返回。
	ErrOutOfBounds = errors.New("abi: out of bounds")

	// ErrInvalidUtf8 is returned when a string payload is not valid UTF-8.
	ErrInvalidUtf8 = errors.New("abi: invalid utf8 string")

	// ErrOutOfMemory is returned when an encoding would exceed MaxEncodedLength.
	ErrOutOfMemory = errors.New("abi: out of memory")

	// ErrNotImplemented is returned for type descriptors the codec cannot handle.
	ErrNotImplemented = errors.New("abi: not implemented")

	// ErrInvalidName is returned when a signature is requested for an empty name.
	ErrInvalidName = errors.New("abi: invalid name")

	// ErrSelectorTopicMismatch is returned when the first topic of a log is not
	// the topic hash of the event it is decoded against.
	// ErrSelectorTopicMismatch 在日志的第一个主题与事件的主题哈希不一致时返回。
	ErrSelectorTopicMismatch = errors.New("abi: event selector does not match first topic")

	// ErrTopicsMismatch is returned when the topic count does not match the
	// indexed arguments of an event.
	ErrTopicsMismatch = errors.New("abi: topic/field count mismatch")

	// ErrDecodeLogDataMismatch is returned when the data section of a log cannot
	// be decoded against the non-indexed arguments of an event.
	ErrDecodeLogDataMismatch = errors.New("abi: log data does not match event arguments")
)

// typeErr returns a formatted type mismatch error.
// typeErr 返回格式化的类型不匹配错误。
func typeErr(expected Type, got Value) error {
	return fmt.Errorf("%w: cannot use %T as type %v as argument", ErrInvalidType, got, expected)
}

// badWordErr reports a word that is not a canonical encoding of t.
func badWordErr(t Type, word []byte) error {
	return fmt.Errorf("%w: improperly encoded %v value %#x", ErrInvalidType, t, word)
}

// outOfBoundsErr reports a read of n bytes at pos in a buffer of the given length.
func outOfBoundsErr(pos, n, length int) error {
	return fmt.Errorf("%w: reading %d bytes at offset %d, buffer length %d", ErrOutOfBounds, n, pos, length)
}
