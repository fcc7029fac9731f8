package lights

import (
	"math"

	"github.com/glowctl/glowctl/pkg/bits"
)

// toggleEpsilon is the float32 machine epsilon: any normalized value
// measurably above zero switches a toggle on.
const toggleEpsilon = 1.1920929e-07

// reportIDBits is the width of the report-id prefix that byte 0 of
// every transmitted buffer carries. Control bit ranges address the
// data area after it.
const reportIDBits = 8

// Encode packs the report's control values into the on-wire buffer:
// ceil(SizeInBits/8) bytes, byte 0 holding the report id (0 when the
// device declares none), every non-control bit zero. Out-of-range
// values are clamped, never rejected; encoding cannot fail.
func Encode(r Report) []byte {
	buf := make([]byte, (r.SizeInBits+7)/8)
	buf[0] = r.ID
	view := bits.View(buf)
	for i := range r.Controls {
		encodeControl(view, &r.Controls[i])
	}
	return buf
}

func encodeControl(view bits.Bits, c *Control) {
	v := clamp(c.Value)
	switch c.Kind {
	case KindToggle:
		on := v > toggleEpsilon
		for bit := c.Bits.Start; bit < c.Bits.End; bit++ {
			view.SetTo(reportIDBits+int(bit), on)
		}
	case KindUnsigned, KindSigned:
		width := c.Bits.Len()
		value := c.Min + int32(math.Round(float64(c.Max-c.Min)*float64(v)))
		// Two's complement truncation to the field width covers the
		// signed case; for in-range unsigned values it is a no-op.
		raw := uint32(value)
		if width < 32 {
			raw &= 1<<width - 1
		}
		if raw == 0 {
			// The buffer is pre-zeroed; zero is always representable.
			return
		}
		// The field is big-endian within its range: the source LSB
		// lands on the range's last bit.
		for i := 0; i < width; i++ {
			view.SetTo(reportIDBits+int(c.Bits.End)-1-i, raw&(1<<i) != 0)
		}
	}
}

func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
