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
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
)

// Go 原生值与 ABI Value 之间的桥接：调用方可以直接传入 uint64、*big.Int、
// common.Address、结构体等，由 ToValue 按照目标类型转换为封闭的 Value 集合。

var (
	bigT     = reflect.TypeOf(big.Int{})
	u256T    = reflect.TypeOf(uint256.Int{})
	addressT = reflect.TypeOf(common.Address{})
	valueT   = reflect.TypeOf((*Value)(nil)).Elem()
)

// ToValue converts a native Go value into the Value variant required by t.
// Values that already implement Value are returned as is and checked when packed.
// Integers accept the sized Go integer kinds, *big.Int and *uint256.Int; tuples
// accept structs (matched by abi tag or camel-cased name) and slices.
// ToValue 将 Go 原生值转换为类型 t 所需的 Value。
func ToValue(t Type, in interface{}) (Value, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil value for %v", ErrInvalidType, t)
	}
	if v, ok := in.(Value); ok {
		return v, nil
	}
	return toValue(t, reflect.ValueOf(in), 0)
}

// ToValues converts a list of native Go values against args.
func (arguments Arguments) ToValues(in []interface{}) ([]Value, error) {
	if len(in) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrArrayLengthMismatch, len(in), len(arguments))
	}
	values := make([]Value, len(in))
	for i, arg := range arguments {
		v, err := ToValue(arg.Type, in[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		values[i] = v
	}
	return values, nil
}

func toValue(t Type, v reflect.Value, depth int) (Value, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	v = indirect(v)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil value for %v", ErrInvalidType, t)
	}
	if v.Type().Implements(valueT) {
		return v.Interface().(Value), nil
	}
	switch t.T {
	case UintTy, IntTy:
		n, err := reflectBig(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v for %v", err, v.Type(), t)
		}
		if t.T == UintTy {
			return Uint{n}, nil
		}
		return Int{n}, nil
	case BoolTy:
		if v.Kind() != reflect.Bool {
			return nil, typeMismatch(t, v)
		}
		return Bool(v.Bool()), nil
	case AddressTy:
		if v.Type() != addressT && !(v.Kind() == reflect.Array && v.Len() == common.AddressLength && v.Type().Elem().Kind() == reflect.Uint8) {
			return nil, typeMismatch(t, v)
		}
		return Address(common.BytesToAddress(mustArrayToByteSlice(v).Bytes())), nil
	case FixedBytesTy:
		if !isByteSequence(v) {
			return nil, typeMismatch(t, v)
		}
		return FixedBytes(common.CopyBytes(mustArrayToByteSlice(v).Bytes())), nil
	case FunctionTy:
		if !isByteSequence(v) || v.Len() != 24 {
			return nil, typeMismatch(t, v)
		}
		var fn Function
		copy(fn[:], mustArrayToByteSlice(v).Bytes())
		return fn, nil
	case BytesTy:
		if !isByteSequence(v) {
			return nil, typeMismatch(t, v)
		}
		return Bytes(common.CopyBytes(mustArrayToByteSlice(v).Bytes())), nil
	case StringTy:
		if v.Kind() != reflect.String {
			return nil, typeMismatch(t, v)
		}
		return String(v.String()), nil
	case SliceTy, ArrayTy:
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return nil, typeMismatch(t, v)
		}
		out := make(Array, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := toValue(*t.Elem, v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil
	case TupleTy:
		return toTuple(t, v, depth)
	}
	return nil, fmt.Errorf("%w: cannot convert to %v", ErrNotImplemented, t)
}

func toTuple(t Type, v reflect.Value, depth int) (Value, error) {
	out := make(Tuple, len(t.TupleElems))
	switch v.Kind() {
	case reflect.Struct:
		fieldmap, err := mapArgNamesToStructFields(t.TupleRawNames, v)
		if err != nil {
			return nil, err
		}
		for i, elem := range t.TupleElems {
			field := v.FieldByName(fieldmap[t.TupleRawNames[i]])
			if !field.IsValid() {
				return nil, fmt.Errorf("%w: field %s for tuple not found in the given struct", ErrInvalidType, t.TupleRawNames[i])
			}
			val, err := toValue(*elem, field, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
	case reflect.Slice, reflect.Array:
		if v.Len() != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %v wants %d components, got %d", ErrArrayLengthMismatch, t, len(t.TupleElems), v.Len())
		}
		for i, elem := range t.TupleElems {
			val, err := toValue(*elem, v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
	default:
		return nil, typeMismatch(t, v)
	}
	return out, nil
}

// reflectBig converts any Go integer kind, big.Int or uint256.Int to a fresh big.Int.
// uint256.Int is a [4]uint64, so the named types are matched before kinds.
func reflectBig(v reflect.Value) (*big.Int, error) {
	switch v.Type() {
	case bigT:
		if v.CanAddr() {
			return new(big.Int).Set(v.Addr().Interface().(*big.Int)), nil
		}
		n := v.Interface().(big.Int)
		return new(big.Int).Set(&n), nil
	case u256T:
		n := v.Interface().(uint256.Int)
		return n.ToBig(), nil
	}
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(v.Uint()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(v.Int()), nil
	}
	return nil, ErrInvalidType
}

func typeMismatch(t Type, v reflect.Value) error {
	return fmt.Errorf("%w: cannot use %v as type %v as argument", ErrInvalidType, v.Type(), t)
}

func isByteSequence(v reflect.Value) bool {
	return (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && v.Type().Elem().Kind() == reflect.Uint8
}

// indirect dereferences pointers down to the underlying value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func mustArrayToByteSlice(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Slice {
		return value
	}
	slice := reflect.MakeSlice(reflect.TypeOf([]byte{}), value.Len(), value.Len())
	reflect.Copy(slice, value)
	return slice
}

// NativeValue converts a Value back into plain Go data: *big.Int for integers,
// bool, common.Address, []byte for byte values, string, [24]byte for functions
// and []interface{} for arrays and tuples.
// NativeValue 将 Value 转换回普通的 Go 数据。
func NativeValue(v Value) interface{} {
	switch v := v.(type) {
	case Uint:
		return new(big.Int).Set(v.V)
	case Int:
		return new(big.Int).Set(v.V)
	case Bool:
		return bool(v)
	case Address:
		return common.Address(v)
	case FixedBytes:
		return []byte(common.CopyBytes(v))
	case Bytes:
		return []byte(common.CopyBytes(v))
	case String:
		return string(v)
	case Function:
		return [24]byte(v)
	case Array:
		return nativeList(v)
	case Tuple:
		return nativeList(v)
	}
	return nil
}

func nativeList(vals []Value) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = NativeValue(v)
	}
	return out
}

// mapArgNamesToStructFields maps a slice of argument names to struct fields.
//
// first round: for each Exportable field that contains a `abi:""` tag and this field name
// exists in the given argument name list, pair them together.
//
// second round: for each argument name that has not been already linked, find what
// variable is expected to be mapped into, if it exists and has not been used, pair them.
//
// Note this function assumes the given value is a struct value.
// mapArgNamesToStructFields 将参数名称映射到结构体字段。
func mapArgNamesToStructFields(argNames []string, value reflect.Value) (map[string]string, error) {
	typ := value.Type()

	abi2struct := make(map[string]string)
	struct2abi := make(map[string]string)

	// first round ~~~
	for i := 0; i < typ.NumField(); i++ {
		structFieldName := typ.Field(i).Name

		// skip private struct fields.
		if structFieldName[:1] != strings.ToUpper(structFieldName[:1]) {
			continue
		}
		// skip fields that have no abi:"" tag.
		tagName, ok := typ.Field(i).Tag.Lookup("abi")
		if !ok {
			continue
		}
		// check if tag is empty.
		if tagName == "" {
			return nil, fmt.Errorf("struct: abi tag in '%s' is empty", structFieldName)
		}
		// check which argument field matches with the abi tag.
		found := false
		for _, arg := range argNames {
			if arg == tagName {
				if abi2struct[arg] != "" {
					return nil, fmt.Errorf("struct: abi tag in '%s' already mapped", structFieldName)
				}
				// pair them
				abi2struct[arg] = structFieldName
				struct2abi[structFieldName] = arg
				found = true
			}
		}
		// check if this tag has been mapped.
		if !found {
			return nil, fmt.Errorf("struct: abi tag '%s' defined but not found in abi", tagName)
		}
	}

	// second round ~~~
	for _, argName := range argNames {
		structFieldName := ToCamelCase(argName)

		if structFieldName == "" {
			return nil, errors.New("abi: purely underscored output cannot unpack to struct")
		}

		// this abi has already been paired, skip it... unless there exists another, yet unassigned
		// struct field with the same field name. If so, raise an error:
		//    abi: [ { "name": "value" } ]
		//    struct { Value  *big.Int , Value1 *big.Int `abi:"value"`}
		if abi2struct[argName] != "" {
			if abi2struct[argName] != structFieldName &&
				struct2abi[structFieldName] == "" &&
				value.FieldByName(structFieldName).IsValid() {
				return nil, fmt.Errorf("abi: multiple variables maps to the same abi field '%s'", argName)
			}
			continue
		}

		// return an error if this struct field has already been paired.
		if struct2abi[structFieldName] != "" {
			return nil, fmt.Errorf("abi: multiple outputs mapping to the same struct field '%s'", structFieldName)
		}

		if value.FieldByName(structFieldName).IsValid() {
			// pair them
			abi2struct[argName] = structFieldName
			struct2abi[structFieldName] = argName
		} else {
			// not paired, but annotate as used, to detect cases like
			//   abi : [ { "name": "value" }, { "name": "_value" } ]
			//   struct { Value *big.Int }
			struct2abi[structFieldName] = argName
		}
	}
	return abi2struct, nil
}

// ToCamelCase converts an under-score string to a camel-case string.
// ToCamelCase 将下划线分隔的字符串转换为驼峰命名法的字符串。
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
