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

// Package abi implements the Ethereum ABI (Application Binary
// Interface).
//
// Values are described by a Type tree and carried as one of the closed set of
// Value variants (Uint, Int, Bool, Address, FixedBytes, Bytes, String, Array,
// Tuple, Function). EncodeParameters and DecodeParameters convert between
// value lists and the canonical head/tail layout; ComputeSelector and
// ComputeEventTopicHash derive identifiers from canonical signatures; and
// DecodeEventLog splits a log back into the inputs of an event, reporting
// indexed reference types as hash-only fields.
//
// abi 包实现了以太坊的 ABI（应用二进制接口）。
//
// 以太坊 ABI 是强类型的，在编译时已知且是静态的。值以封闭的 Value 集合表示，
// 按照头部/尾部布局进行编码和解码；事件日志中的索引动态参数只保留其哈希。
package abi

//1. ABI 的核心特性
//强类型系统 ：
//以太坊 ABI 是一种强类型接口，所有类型在编译时已知，并且是静态定义的。
//2. ABI 的作用
//方法调用 ：
//ABI 定义了智能合约方法的输入输出格式，使得外部程序能够正确地调用合约方法。
//事件日志 ：
//ABI 还定义了事件的结构，允许开发者监听和解析链上事件。
//数据编码与解码 ：
//ABI 提供了对数据进行编码（序列化）和解码（反序列化）的功能，用于智能合约与外部世界的交互。
