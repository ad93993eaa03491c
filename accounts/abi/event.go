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
	"fmt"
	"strings"

	"github.com/sunyihoo/abicodec/common"
)

// Event is an event potentially triggered by the EVM's LOG mechanism. The Event
// holds type information (inputs) about the yielded output. Anonymous events
// don't get the signature canonical representation as the first LOG topic.
// Event 是可能由 EVM 的 LOG 机制触发的事件。
// 匿名事件不会将签名的规范表示作为第一个 LOG 主题。
type Event struct {
	// Name is the event name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of event overloading.
	//
	// e.g.
	// These are two events that have the same name:
	// * foo(int,int)
	// * foo(uint,uint)
	// The event name of the first one will be resolved as foo while the second one
	// will be resolved as foo0.
	Name string

	// RawName is the raw event name parsed from ABI.
	RawName   string
	Anonymous bool
	Inputs    Arguments
	str       string

	// Sig contains the string signature according to the ABI spec.
	// e.g.	 event foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	// Sig 包含根据 ABI 规范生成的字符串签名。
	Sig string

	// ID returns the canonical representation of the event's signature used by the
	// abi definition to identify event names and types.
	// ID 是签名的 Keccak256 哈希，非匿名事件日志的第一个主题。
	ID common.Hash
}

// NewEvent creates a new Event.
// It sanitizes the input arguments to remove unnamed arguments.
// It also precomputes the id, signature and string representation
// of the event.
// NewEvent 创建一个新的 Event，并预计算事件的 ID、签名和字符串表示形式。
func NewEvent(name, rawName string, anonymous bool, inputs Arguments) Event {
	inputs, str := describeArguments("event", rawName, inputs)
	sig := fmt.Sprintf("%v(%v)", rawName, strings.Join(inputs.Types(), ","))

	return Event{
		Name:      name,
		RawName:   rawName,
		Anonymous: anonymous,
		Inputs:    inputs,
		str:       str,
		Sig:       sig,
		ID:        ComputeEventTopicHash(sig),
	}
}

// describeArguments names unnamed inputs argN and renders the human readable
// form "kind name(type name, type indexed name)". The inputs are copied.
func describeArguments(kind, rawName string, inputs Arguments) (Arguments, string) {
	named := make(Arguments, len(inputs))
	names := make([]string, len(inputs))
	for i, input := range inputs {
		named[i] = input
		if input.Name == "" {
			named[i].Name = fmt.Sprintf("arg%d", i)
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, named[i].Name)
		if input.Indexed {
			names[i] = fmt.Sprintf("%v indexed %v", input.Type, named[i].Name)
		}
	}
	return named, fmt.Sprintf("%v %v(%v)", kind, rawName, strings.Join(names, ", "))
}

// String returns the string representation of the event.
// String 返回事件的字符串表示形式。
func (e Event) String() string {
	return e.str
}
