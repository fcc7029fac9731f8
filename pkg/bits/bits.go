// Package bits provides a bit-addressed view over a byte slice using
// MSB-first ordering: bit 0 is the most significant bit of byte 0.
// This matches how HID report buffers lay out bit-packed fields.
package bits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Bits struct {
	bytes []byte
}

// View wraps data without copying. Mutations through the view are
// visible in the underlying slice.
func View(data []byte) Bits {
	return Bits{bytes: data}
}

// New allocates a zeroed buffer holding size bits, rounded up to whole
// bytes.
func New(size int) Bits {
	return Bits{bytes: make([]byte, (size+7)/8)}
}

func (b Bits) Len() int {
	return len(b.bytes) * 8
}

func (b Bits) Bytes() []byte {
	return b.bytes
}

func (b Bits) IsSet(bit int) bool {
	if bit < 0 || bit >= b.Len() {
		return false
	}
	return b.bytes[bit/8]&(0x80>>(bit%8)) != 0
}

func (b Bits) Set(bit int) bool {
	if bit < 0 || bit >= b.Len() {
		return false
	}
	mask := byte(0x80 >> (bit % 8))
	changed := b.bytes[bit/8]&mask == 0
	b.bytes[bit/8] |= mask
	return changed
}

func (b Bits) Clear(bit int) bool {
	if bit < 0 || bit >= b.Len() {
		return false
	}
	mask := byte(0x80 >> (bit % 8))
	changed := b.bytes[bit/8]&mask != 0
	b.bytes[bit/8] &^= mask
	return changed
}

func (b Bits) SetTo(bit int, on bool) bool {
	if on {
		return b.Set(bit)
	}
	return b.Clear(bit)
}

func (b Bits) IsEmpty() bool {
	for _, bb := range b.bytes {
		if bb != 0 {
			return false
		}
	}
	return true
}

func (b Bits) Equal(other Bits) bool {
	if len(b.bytes) != len(other.bytes) {
		return false
	}
	for i, bb := range b.bytes {
		if bb != other.bytes[i] {
			return false
		}
	}
	return true
}

func (b Bits) Clone() Bits {
	bytes := make([]byte, len(b.bytes))
	copy(bytes, b.bytes)
	return Bits{bytes: bytes}
}

// String renders the buffer as space-separated binary octets,
// most significant bit first, e.g. "00000000 10000000".
func (b Bits) String() string {
	parts := make([]string, len(b.bytes))
	for i, bb := range b.bytes {
		parts[i] = fmt.Sprintf("%08b", bb)
	}
	return strings.Join(parts, " ")
}

// FromString parses the String format back into a buffer.
func FromString(s string) (Bits, error) {
	byteStrs := strings.Fields(s)
	b := Bits{bytes: make([]byte, len(byteStrs))}
	for i, byteStr := range byteStrs {
		if len(byteStr) != 8 {
			return Bits{}, errors.New("bits: incomplete byte")
		}
		val, err := strconv.ParseUint(byteStr, 2, 8)
		if err != nil {
			return Bits{}, errors.New("bits: invalid byte value")
		}
		b.bytes[i] = byte(val)
	}
	return b, nil
}
