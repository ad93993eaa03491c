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
	"encoding/json"
	"fmt"
)

// 参数编码遵循固定宽度（32 字节对齐）和动态偏移量规则。
// 索引参数仅适用于事件日志，不会出现在事件数据中，而是作为主题（topics）存储。

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 结构体保存参数的名称和对应的类型。
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events (仅适用于事件)
}

type Arguments []Argument

type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// NewArgument builds an argument from a type string. Tuple types take their
// fields from components.
func NewArgument(name, typ string, indexed bool, components ...ArgumentMarshaling) (Argument, error) {
	t, err := NewType(typ, "", components)
	if err != nil {
		return Argument{}, err
	}
	return Argument{Name: name, Type: t, Indexed: indexed}, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 方法实现了 json.Unmarshaler 接口。
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}

	argument.Type, err = NewType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed

	return nil
}

// IsDynamic reports whether the argument is encoded behind an offset.
func (argument Argument) IsDynamic() bool {
	return isDynamicType(argument.Type)
}

// Components returns the fields of a tuple argument, or of the tuple element of
// a tuple array, as arguments. It is nil for every other type.
// Components 返回元组参数的字段。
func (argument Argument) Components() Arguments {
	t := argument.Type
	for t.T == SliceTy || t.T == ArrayTy {
		t = *t.Elem
	}
	if t.T != TupleTy {
		return nil
	}
	comps := make(Arguments, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		comps[i] = Argument{Name: t.TupleRawNames[i], Type: *elem}
	}
	return comps
}

// NonIndexed returns the arguments with indexed arguments filtered out.
// NonIndexed 方法返回过滤掉索引参数后的参数列表。
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Indexed returns the indexed arguments in declaration order.
func (arguments Arguments) Indexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Types returns the canonical type strings of the arguments.
func (arguments Arguments) Types() []string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return types
}

// PackValues performs the operation native Go -> Hexdata, converting each
// input with ToValue first.
// PackValues 先将 Go 原生值转换为 Value，再进行打包。
func (arguments Arguments) PackValues(args []interface{}) ([]byte, error) {
	values, err := arguments.ToValues(args)
	if err != nil {
		return nil, err
	}
	return arguments.Pack(values...)
}
