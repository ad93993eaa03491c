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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	HashTy
	FixedPointTy
	FunctionTy
)

// Type describes one ABI type. It is a tagged union on T: the remaining fields
// are meaningful only for the variants that use them.
// Type 描述一个 ABI 类型，以 T 作为标签的联合类型。
type Type struct {
	Elem *Type // 数组或切片的元素类型
	Size int   // 整数位宽、bytesN 的 N 或定长数组的长度
	T    byte  // 我们的自定义类型检查 Our own type checking

	stringKind string // canonical form used when deriving signatures

	// Tuple relative fields
	TupleRawName  string   // Raw struct name defined in source code, may be empty.
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields, may contain empty names
}

var (
	// typeRegex parses the abi sub types
	// typeRegex 解析 ABI 子类型
	typeRegex = regexp.MustCompile("^([a-zA-Z]+)(([0-9]+)(x([0-9]+))?)?$")

	// sliceSizeRegex grab the slice size
	sliceSizeRegex = regexp.MustCompile("[0-9]+")
)

// NewType creates a new type descriptor of abi type given in t. Tuple types take
// their fields from components; internalType is the optional solidity type name
// emitted by compilers since 0.5.10.
// NewType 根据给定的 ABI 类型字符串 t 创建类型描述。
func NewType(t string, internalType string, components []ArgumentMarshaling) (Type, error) {
	return newType(t, internalType, components, 0)
}

// MustNewType is like NewType for elementary and array types but panics on error.
func MustNewType(t string) Type {
	typ, err := NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// NewTupleType assembles a tuple type from already constructed field types.
func NewTupleType(names []string, elems ...Type) (Type, error) {
	if len(names) != len(elems) {
		return Type{}, fmt.Errorf("%w: %d tuple names for %d fields", ErrArrayLengthMismatch, len(names), len(elems))
	}
	typ := Type{T: TupleTy, TupleRawNames: append([]string(nil), names...)}
	kinds := make([]string, len(elems))
	for i := range elems {
		elem := elems[i]
		if typeDepth(elem) >= MaxRecursionDepth {
			return Type{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
		}
		typ.TupleElems = append(typ.TupleElems, &elem)
		kinds[i] = elem.stringKind
	}
	typ.stringKind = "(" + strings.Join(kinds, ",") + ")"
	return typ, nil
}

// NewArrayType wraps elem into a fixed array of size elements, or a dynamic
// array when size is negative.
func NewArrayType(elem Type, size int) (Type, error) {
	if typeDepth(elem) >= MaxRecursionDepth {
		return Type{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	if size < 0 {
		return Type{T: SliceTy, Elem: &elem, stringKind: elem.stringKind + "[]"}, nil
	}
	typ := Type{T: ArrayTy, Elem: &elem, Size: size, stringKind: fmt.Sprintf("%s[%d]", elem.stringKind, size)}
	if err := checkArraySize(typ); err != nil {
		return Type{}, err
	}
	return typ, nil
}

func newType(t string, internalType string, components []ArgumentMarshaling, depth int) (typ Type, err error) {
	if depth > MaxRecursionDepth {
		return Type{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxRecursionDepth)
	}
	// check that array brackets are equal if they exist
	// 检查数组括号是否存在且数量相等
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidType, t)
	}
	typ.stringKind = t

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	// 如果有括号，准备进入切片/数组模式并递归创建类型
	if strings.Count(t, "[") != 0 {
		// Note internalType can be empty here.
		subInternal := internalType
		if i := strings.LastIndex(internalType, "["); i != -1 {
			subInternal = subInternal[:i]
		}
		i := strings.LastIndex(t, "[")
		if !strings.HasSuffix(t, "]") {
			return Type{}, fmt.Errorf("%w: invalid formatting of array type %q", ErrInvalidType, t)
		}
		embeddedType, err := newType(t[:i], subInternal, components, depth+1)
		if err != nil {
			return Type{}, err
		}
		// grab the last cell and create a type from there
		sliced := t[i:]
		intz := sliceSizeRegex.FindAllString(sliced, -1)

		switch {
		case sliced == "[]":
			typ.T = SliceTy
			typ.Elem = &embeddedType
			typ.stringKind = embeddedType.stringKind + sliced
		case len(intz) == 1 && sliced == "["+intz[0]+"]":
			typ.T = ArrayTy
			typ.Elem = &embeddedType
			typ.Size, err = strconv.Atoi(intz[0])
			if err != nil {
				return Type{}, fmt.Errorf("%w: error parsing variable size: %v", ErrInvalidType, err)
			}
			typ.stringKind = embeddedType.stringKind + sliced
			if err := checkArraySize(typ); err != nil {
				return Type{}, err
			}
		default:
			return Type{}, fmt.Errorf("%w: invalid formatting of array type %q", ErrInvalidType, t)
		}
		return typ, nil
	}
	// parse the type and size of the abi-type.
	matches := typeRegex.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return Type{}, fmt.Errorf("%w: invalid type '%v'", ErrInvalidType, t)
	}
	parsedType := matches[0]

	// varSize is the size of the variable
	var varSize int
	if len(parsedType[3]) > 0 {
		varSize, err = strconv.Atoi(parsedType[3])
		if err != nil {
			return Type{}, fmt.Errorf("%w: error parsing variable size: %v", ErrInvalidType, err)
		}
	} else {
		if parsedType[0] == "uint" || parsedType[0] == "int" {
			// this should fail because it means that there's something wrong with
			// the abi type (the compiler should always format it to the size...always)
			return Type{}, fmt.Errorf("%w: unsupported arg type: %s", ErrInvalidType, t)
		}
	}
	// varType is the parsed abi type
	switch varType := parsedType[1]; varType {
	case "int", "uint":
		if varSize == 0 || varSize > 256 || varSize%8 != 0 {
			return Type{}, fmt.Errorf("%w: unsupported integer size in %s", ErrInvalidType, t)
		}
		typ.Size = varSize
		typ.T = UintTy
		if varType == "int" {
			typ.T = IntTy
		}
	case "bool":
		typ.T = BoolTy
	case "address":
		typ.Size = 20
		typ.T = AddressTy
	case "string":
		typ.T = StringTy
	case "bytes":
		if len(parsedType[3]) == 0 {
			typ.T = BytesTy
		} else {
			if varSize == 0 || varSize > 32 {
				return Type{}, fmt.Errorf("%w: unsupported arg type: %s", ErrInvalidType, t)
			}
			typ.T = FixedBytesTy
			typ.Size = varSize
		}
	case "tuple":
		var (
			elems []*Type
			names []string
			kinds []string
		)
		for _, c := range components {
			cType, err := newType(c.Type, c.InternalType, c.Components, depth+1)
			if err != nil {
				return Type{}, err
			}
			elems = append(elems, &cType)
			names = append(names, c.Name)
			kinds = append(kinds, cType.stringKind)
		}
		typ.TupleElems = elems
		typ.TupleRawNames = names
		typ.T = TupleTy
		typ.stringKind = "(" + strings.Join(kinds, ",") + ")"

		const structPrefix = "struct "
		// After solidity 0.5.10, a new field of abi "internalType"
		// is introduced. From that we can obtain the struct name
		// user defined in the source code.
		if internalType != "" && strings.HasPrefix(internalType, structPrefix) {
			// Foo.Bar type definition is not allowed in golang,
			// convert the format to FooBar
			typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
		}

	case "function":
		typ.T = FunctionTy
		typ.Size = 24
	case "fixed", "ufixed":
		return Type{}, fmt.Errorf("%w: fixed point type %s", ErrNotImplemented, t)
	default:
		if strings.HasPrefix(internalType, "contract ") {
			typ.Size = 20
			typ.T = AddressTy
			typ.stringKind = "address"
		} else {
			return Type{}, fmt.Errorf("%w: unsupported arg type: %s", ErrInvalidType, t)
		}
	}

	return
}

// String returns the canonical form of the type as it appears in signatures:
// tuples are rendered as "(t1,t2)" and arrays append "[]" or "[k]".
// String 实现 Stringer 接口。
func (t Type) String() (out string) {
	return t.stringKind
}

// IsDynamic reports whether values of the type are encoded out of line.
func (t Type) IsDynamic() bool {
	return isDynamicType(t)
}

// requiresLengthPrefix returns whether the type requires any sort of length
// prefixing.
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// isDynamicType returns true if the type is dynamic.
// The following types are called “dynamic”:
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
// isDynamicType 如果类型是动态的，则返回 true。
func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}

// getTypeSize returns the size that this type needs to occupy.
// We distinguish static and dynamic types. Static types are encoded in-place
// and dynamic types are encoded at a separately allocated location after the
// current block.
// So for a static variable, the size returned represents the size that the
// variable actually occupies.
// For a dynamic variable, the returned size is fixed 32 bytes, which is used
// to store the location reference for actual value storage.
// getTypeSize 返回此类型在头部区域需要占用的空间大小。
// Sizes above MaxEncodedLength saturate at headLimit so that callers can
// compare against the limit without overflowing int.
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		elem := 32
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			elem = getTypeSize(*t.Elem)
		}
		if elem == 0 {
			return 0
		}
		if t.Size > headLimit/elem {
			return headLimit
		}
		return t.Size * elem
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
			if total > headLimit {
				return headLimit
			}
		}
		return total
	}
	return 32
}

// checkArraySize rejects fixed arrays that no encoding within
// MaxEncodedLength could hold. Every element takes at least one word, either
// in place or as an offset slot.
func checkArraySize(t Type) error {
	if t.Size < 0 || t.Size > maxArrayLength || getTypeSize(t) > MaxEncodedLength {
		return fmt.Errorf("%w: array %v exceeds the %d byte encoding limit", ErrInvalidType, t, MaxEncodedLength)
	}
	return nil
}

// typeDepth returns the nesting depth of composite types, 0 for elementary ones.
func typeDepth(t Type) int {
	switch t.T {
	case SliceTy, ArrayTy:
		return 1 + typeDepth(*t.Elem)
	case TupleTy:
		deepest := 0
		for _, elem := range t.TupleElems {
			if d := typeDepth(*elem); d > deepest {
				deepest = d
			}
		}
		return 1 + deepest
	}
	return 0
}
