// Package lights builds a flat control model from a device's output
// report descriptor and encodes normalized control values back into
// the bit-packed report buffers the device expects.
package lights

import (
	"fmt"

	"github.com/glowctl/glowctl/hiddesc"
)

type Kind uint8

const (
	// KindToggle is a single-bit on/off control.
	KindToggle Kind = iota
	// KindUnsigned covers multi-bit controls with a non-negative
	// logical range.
	KindUnsigned
	// KindSigned covers multi-bit controls whose logical minimum is
	// negative; the codec emits two's complement for these.
	KindSigned
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	}
	return "unknown"
}

// Control is one independently addressable output. Value is normalized
// to [0, 1], starts at 0 and is clamped during encoding; the
// presentation layer owns its mutation.
type Control struct {
	Bits hiddesc.BitRange
	Kind Kind
	Min  int32
	Max  int32
	Name string

	Value float32
}

func (c Control) String() string {
	return fmt.Sprintf("Control{%s, bits %d..%d, %q}", c.Kind, c.Bits.Start, c.Bits.End, c.Name)
}

// Report holds the controls of one output report. SizeInBits counts
// the whole transmitted report including the 8-bit report-id prefix;
// control bit ranges address the data area that follows it.
type Report struct {
	ID         uint8
	SizeInBits int
	Controls   []Control
}

// Control returns a pointer to the control at index i, for in-place
// value mutation.
func (r *Report) Control(i int) *Control {
	return &r.Controls[i]
}
