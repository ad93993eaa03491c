// Copyright 2018 The go-ethereum Authors
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

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/crypto"
)

// EncodeTopic converts a single indexed event argument into its topic.
//
// Static elementary values are stored as their 32 byte ABI word. Strings and
// bytes are stored as the Keccak256 hash of their contents. Arrays and tuples
// are stored as the Keccak256 hash of their in-place encoding: every element
// padded to 32 bytes, no offsets and no length prefixes.
// EncodeTopic 将单个索引事件参数转换为主题。动态类型和复合类型只能存储其哈希。
func EncodeTopic(t Type, v Value) (common.Hash, error) {
	switch t.T {
	case StringTy:
		s, ok := v.(String)
		if !ok {
			return common.Hash{}, typeErr(t, v)
		}
		return crypto.Keccak256Hash([]byte(s)), nil
	case BytesTy:
		b, ok := v.(Bytes)
		if !ok {
			return common.Hash{}, typeErr(t, v)
		}
		return crypto.Keccak256Hash(b), nil
	case SliceTy, ArrayTy, TupleTy:
		enc, err := encodeInPlace(t, v, 0)
		if err != nil {
			return common.Hash{}, err
		}
		return crypto.Keccak256Hash(enc), nil
	default:
		word, err := packElement(t, v)
		if err != nil {
			return common.Hash{}, err
		}
		return common.BytesToHash(word), nil
	}
}

// encodeInPlace produces the encoding Solidity hashes for indexed reference
// types. Dynamic members are inlined rather than referenced by offset.
func encodeInPlace(t Type, v Value, depth int) ([]byte, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	switch t.T {
	case StringTy:
		s, ok := v.(String)
		if !ok {
			return nil, typeErr(t, v)
		}
		return common.RightPadBytes([]byte(s), (len(s)+31)/32*32), nil
	case BytesTy:
		b, ok := v.(Bytes)
		if !ok {
			return nil, typeErr(t, v)
		}
		return common.RightPadBytes(common.CopyBytes(b), (len(b)+31)/32*32), nil
	case SliceTy, ArrayTy:
		arr, ok := v.(Array)
		if !ok {
			return nil, typeErr(t, v)
		}
		if t.T == ArrayTy && len(arr) != t.Size {
			return nil, fmt.Errorf("%w: %v wants %d elements, got %d", ErrArrayLengthMismatch, t, t.Size, len(arr))
		}
		var out []byte
		for _, elem := range arr {
			enc, err := encodeInPlace(*t.Elem, elem, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	case TupleTy:
		tuple, ok := v.(Tuple)
		if !ok {
			return nil, typeErr(t, v)
		}
		if len(tuple) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %v wants %d components, got %d", ErrArrayLengthMismatch, t, len(t.TupleElems), len(tuple))
		}
		var out []byte
		for i, elem := range t.TupleElems {
			enc, err := encodeInPlace(*elem, tuple[i], depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	default:
		return packElement(t, v)
	}
}

// EncodeEventTopics builds the topics of a log emitted by event with the given
// indexed values, in declaration order. Non-anonymous events lead with their ID.
// EncodeEventTopics 构建事件日志的主题列表：非匿名事件以事件 ID 开头，随后是索引参数。
func EncodeEventTopics(event Event, indexed []Value) ([]common.Hash, error) {
	args := event.Inputs.Indexed()
	if len(indexed) != len(args) {
		return nil, fmt.Errorf("%w: event %s has %d indexed inputs, got %d values", ErrArrayLengthMismatch, event.Name, len(args), len(indexed))
	}
	topics := make([]common.Hash, 0, len(args)+1)
	if !event.Anonymous {
		topics = append(topics, event.ID)
	}
	for i, arg := range args {
		topic, err := EncodeTopic(arg.Type, indexed[i])
		if err != nil {
			return nil, fmt.Errorf("abi: indexed argument %q: %w", arg.Name, err)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

// MakeTopics converts a filter query argument list into a filter topic set.
// Each rule is a native Go value converted against the matching indexed
// argument of fields; a nil rule is a wildcard for its position.
// MakeTopics 将过滤器查询参数列表转换为过滤器主题集合。
func MakeTopics(fields Arguments, query ...[]interface{}) ([][]common.Hash, error) {
	if len(query) > len(fields) {
		return nil, fmt.Errorf("%w: %d topic positions for %d indexed arguments", ErrTopicsMismatch, len(query), len(fields))
	}
	topics := make([][]common.Hash, len(query))
	for i, filter := range query {
		for _, rule := range filter {
			if rule == nil {
				continue
			}
			var topic common.Hash

			switch rule := rule.(type) {
			case common.Hash:
				copy(topic[:], rule[:])
			case int8:
				copy(topic[:], genIntType(int64(rule), 1))
			case int16:
				copy(topic[:], genIntType(int64(rule), 2))
			case int32:
				copy(topic[:], genIntType(int64(rule), 4))
			case int64:
				copy(topic[:], genIntType(rule, 8))
			default:
				val, err := ToValue(fields[i].Type, rule)
				if err != nil {
					return nil, err
				}
				if topic, err = EncodeTopic(fields[i].Type, val); err != nil {
					return nil, err
				}
			}
			topics[i] = append(topics[i], topic)
		}
	}
	return topics, nil
}

// genIntType generates the canonical representation of an integer type with the given size.
// genIntType 生成给定大小的整数类型的规范表示形式。
func genIntType(rule int64, size uint) []byte {
	var topic [common.HashLength]byte
	if rule < 0 {
		// if a rule is negative, we need to put it into two's complement.
		// extended to common.HashLength bytes.
		// 如果规则为负数，需要将其转换为补码形式，并扩展到 common.HashLength 字节。
		for i := range topic {
			topic[i] = 0xff
		}
	}
	for i := uint(0); i < size; i++ {
		topic[common.HashLength-i-1] = byte(rule >> (i * 8))
	}
	return topic[:]
}

// ParseTopics converts the indexed topic fields into their values.
//
// Note, dynamic types cannot be reconstructed since they get mapped to Keccak256
// hashes as the topic value! For those arguments the returned value is a Bytes
// holding the 32 byte hash, which is indistinguishable from a decoded bytes
// value. Use ParseTopicFields to tell the two apart.
// ParseTopics 将索引主题字段转换为实际的日志字段值。引用类型只能得到其哈希。
func ParseTopics(fields Arguments, topics []common.Hash) ([]Value, error) {
	out := make([]Value, 0, len(fields))
	err := parseTopicWithSetter(fields, topics, func(arg Argument, reconstr Value) {
		out = append(out, reconstr)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseTopicsIntoMap converts the indexed topic field-value pairs into map
// key-value pairs. Hash-only topics are stored as in ParseTopics.
// ParseTopicsIntoMap 将索引主题字段值对转换为映射键值对。
func ParseTopicsIntoMap(out map[string]Value, fields Arguments, topics []common.Hash) error {
	return parseTopicWithSetter(fields, topics,
		func(arg Argument, reconstr Value) {
			out[arg.Name] = reconstr
		})
}

// ParseTopicFields converts the indexed topics into event fields. Reference
// types come back as FieldHashOnly with the topic in Hash, everything else as
// FieldDecoded.
// ParseTopicFields 将索引主题转换为事件字段，保留“仅哈希”状态。
func ParseTopicFields(fields Arguments, topics []common.Hash) ([]EventField, error) {
	// Sanity check that the fields and topics match up
	// 检查字段和主题是否匹配
	if len(fields) != len(topics) {
		return nil, fmt.Errorf("%w: %d topics for %d fields", ErrTopicsMismatch, len(topics), len(fields))
	}
	out := make([]EventField, len(fields))
	for i, arg := range fields {
		if !arg.Indexed {
			return nil, errors.New("abi: non-indexed field in topic reconstruction")
		}
		out[i] = EventField{Name: arg.Name, Type: arg.Type, Indexed: true}
		if isHashedTopic(arg.Type) {
			// The topic holds keccak256 of the value, not bytes that decode to it.
			// 主题存储的是值的 Keccak256 哈希，只能原样返回该哈希。
			out[i].State, out[i].Hash = FieldHashOnly, topics[i]
			continue
		}
		v, err := decodeWord(arg.Type, topics[i].Bytes())
		if err != nil {
			return nil, err
		}
		out[i].State, out[i].Value = FieldDecoded, v
	}
	return out, nil
}

// parseTopicWithSetter converts the indexed topic field-value pairs and stores them using the
// provided set function.
// parseTopicWithSetter 将索引主题字段值对转换，并使用提供的设置函数存储它们。
func parseTopicWithSetter(fields Arguments, topics []common.Hash, setter func(Argument, Value)) error {
	parsed, err := ParseTopicFields(fields, topics)
	if err != nil {
		return err
	}
	for i, v := range DecodedValues(parsed) {
		setter(fields[i], v)
	}
	return nil
}

// isHashedTopic reports whether an indexed argument of type t is stored as a
// hash. This covers every reference type, including statically sized arrays
// and tuples.
func isHashedTopic(t Type) bool {
	switch t.T {
	case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
		return true
	}
	return false
}
