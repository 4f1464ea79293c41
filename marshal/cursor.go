// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package marshal

import (
	"fmt"
)

// Reader is a bounds-checked sequential reader over a Marshal byte stream.
// A failed read leaves the position unchanged.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current byte offset
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// EOF returns true once every byte has been consumed
func (r *Reader) EOF() bool {
	return r.pos >= len(r.data)
}

func (r *Reader) truncated(need int) error {
	return decodeErr(
		r.pos,
		ErrTruncatedInput,
		"need %d bytes, have %d",
		need,
		r.Remaining(),
	)
}

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.truncated(1)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.truncated(1)
	}
	return r.data[r.pos], nil
}

// ReadLong reads a w_long packed integer. Small values occupy a single byte
// (offset by 5); larger ones are a signed byte count followed by up to
// four little-endian bytes.
func (r *Reader) ReadLong() (int64, error) {
	if r.pos >= len(r.data) {
		return 0, r.truncated(1)
	}
	c := int8(r.data[r.pos])
	switch {
	case c == 0:
		r.pos++
		return 0, nil
	case c >= 5:
		r.pos++
		return int64(c) - 5, nil
	case c <= -5:
		r.pos++
		return int64(c) + 5, nil
	case c > 0:
		n := int(c)
		if r.Remaining() < n+1 {
			return 0, r.truncated(n + 1)
		}
		var x int64
		for i := range n {
			x |= int64(r.data[r.pos+1+i]) << (8 * i)
		}
		r.pos += n + 1
		return x, nil
	default:
		n := int(-c)
		if r.Remaining() < n+1 {
			return 0, r.truncated(n + 1)
		}
		x := int64(-1)
		for i := range n {
			x &^= int64(0xff) << (8 * i)
			x |= int64(r.data[r.pos+1+i]) << (8 * i)
		}
		r.pos += n + 1
		return x, nil
	}
}

// ReadLength reads a w_long that must be a non-negative count
func (r *Reader) ReadLength() (int, error) {
	start := r.pos
	n, err := r.ReadLong()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		r.pos = start
		return 0, decodeErr(start, ErrMalformedTag, "negative length %d", n)
	}
	return int(n), nil
}

// ReadBytes reads exactly n raw bytes. The returned slice is a copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, decodeErr(r.pos, ErrMalformedTag, "negative length %d", n)
	}
	if r.Remaining() < n {
		return nil, r.truncated(n)
	}
	ret := make([]byte, n)
	copy(ret, r.data[r.pos:r.pos+n])
	r.pos += n
	return ret, nil
}

// ReadString reads a length-prefixed byte string
func (r *Reader) ReadString() ([]byte, error) {
	start := r.pos
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	ret, err := r.ReadBytes(n)
	if err != nil {
		r.pos = start
		return nil, err
	}
	return ret, nil
}

// ReadFloat reads a length-prefixed textual float. It returns both the
// parsed value and the original text so the value can be re-emitted
// unchanged.
func (r *Reader) ReadFloat() (float64, []byte, error) {
	start := r.pos
	raw, err := r.ReadString()
	if err != nil {
		return 0, nil, err
	}
	f, err := parseFloat(raw)
	if err != nil {
		r.pos = start
		return 0, nil, decodeErr(start, ErrMalformedTag, "bad float %q: %s", raw, err)
	}
	return f, raw, nil
}

// Writer accumulates an encoded Marshal byte stream. Writes never fail.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded stream
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteLong writes x in w_long form, which holds at most four bytes of
// magnitude: x must be in [-2^32, 2^32-1]. Integer values are promoted to
// bignums well before this limit; only lengths and counts come close.
func (w *Writer) WriteLong(x int64) {
	switch {
	case x == 0:
		w.buf = append(w.buf, 0)
	case x > 0 && x < 123:
		w.buf = append(w.buf, byte(x+5))
	case x > -124 && x < 0:
		w.buf = append(w.buf, byte((x-5)&0xff))
	default:
		orig := x
		var tmp [5]byte
		for i := 1; i <= 4; i++ {
			tmp[i] = byte(x & 0xff)
			x >>= 8
			if x == 0 {
				tmp[0] = byte(i)
				w.buf = append(w.buf, tmp[:i+1]...)
				return
			}
			if x == -1 {
				tmp[0] = byte(-i)
				w.buf = append(w.buf, tmp[:i+1]...)
				return
			}
		}
		panic(fmt.Sprintf("marshal: long out of 32-bit range: %d", orig))
	}
}

// WriteBytes writes raw bytes with no length prefix
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteString writes a length-prefixed byte string
func (w *Writer) WriteString(data []byte) {
	w.WriteLong(int64(len(data)))
	w.buf = append(w.buf, data...)
}

// WriteFloat writes f in the textual form Ruby's dumper produces
func (w *Writer) WriteFloat(f float64) {
	w.WriteString([]byte(formatFloat(f)))
}
