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

package hexutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func checkError(t *testing.T, input string, got, want error) bool {
	if got == nil {
		if want != nil {
			t.Errorf("input %s: got no error, want %q", input, want)
			return false
		}
		return true
	}
	if want == nil {
		t.Errorf("input %s: unexpected error %q", input, got)
	} else if got.Error() != want.Error() {
		t.Errorf("input %s: got error %q, want %q", input, got, want)
	}
	return false
}

var unmarshalBytesTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	// invalid encoding
	{input: "", wantErr: errJSONEOF},
	{input: "null", wantErr: errNonString(bytesT)},
	{input: "10", wantErr: errNonString(bytesT)},
	{input: `"0"`, wantErr: wrapTypeError(ErrMissingPrefix, bytesT)},
	{input: `"0x0"`, wantErr: wrapTypeError(ErrOddLength, bytesT)},
	{input: `"0xxx"`, wantErr: wrapTypeError(ErrSyntax, bytesT)},
	{input: `"0x01zz01"`, wantErr: wrapTypeError(ErrSyntax, bytesT)},

	// valid encoding
	{input: `""`, want: []byte{}},
	{input: `"0x"`, want: []byte{}},
	{input: `"0x02"`, want: []byte{0x02}},
	{input: `"0X02"`, want: []byte{0x02}},
	{input: `"0xffffffffff"`, want: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
}

var errJSONEOF = errors.New("unexpected end of JSON input")

func TestUnmarshalBytes(t *testing.T) {
	for _, test := range unmarshalBytesTests {
		var v Bytes
		err := json.Unmarshal([]byte(test.input), &v)
		if !checkError(t, test.input, err, test.wantErr) {
			continue
		}
		if !bytes.Equal(test.want, v) {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, &v, test.want)
		}
	}
}

func TestMarshalBytes(t *testing.T) {
	for _, want := range []string{"0x", "0x02", "0xdeadbeef"} {
		in := MustDecode(want)
		out, err := json.Marshal(Bytes(in))
		if err != nil {
			t.Fatalf("%x: %v", in, err)
		}
		if string(out) != `"`+want+`"` {
			t.Errorf("%x: MarshalJSON output mismatch: got %s, want %q", in, out, want)
		}
		if s := Bytes(in).String(); s != want {
			t.Errorf("%x: String mismatch: got %q, want %q", in, s, want)
		}
	}
}

func TestUint64RoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 0x1234, ^uint64(0)} {
		enc, err := json.Marshal(Uint64(n))
		if err != nil {
			t.Fatal(err)
		}
		var dec Uint64
		if err := json.Unmarshal(enc, &dec); err != nil {
			t.Fatalf("%s: %v", enc, err)
		}
		if uint64(dec) != n {
			t.Errorf("round trip mismatch: got %d, want %d", dec, n)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyString},
		{"12", ErrMissingPrefix},
		{"0x1", ErrOddLength},
		{"0xgg", ErrSyntax},
	}
	for _, test := range tests {
		_, err := Decode(test.input)
		checkError(t, test.input, err, test.want)
	}
	if _, err := DecodeUint64("0x01"); err != ErrLeadingZero {
		t.Errorf("DecodeUint64 leading zero: got %v", err)
	}
	if _, err := DecodeBig("0x1" + string(bytes.Repeat([]byte{'0'}, 64))); err != ErrBig256Range {
		t.Errorf("DecodeBig 257 bits: got %v", err)
	}
}
