package lights

import (
	"testing"

	"github.com/glowctl/glowctl/hiddesc"
	"github.com/glowctl/glowctl/pkg/bits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleControlReport(c Control, sizeInBits int) Report {
	return Report{ID: 0, SizeInBits: sizeInBits, Controls: []Control{c}}
}

func TestEncodeSingleToggle(t *testing.T) {
	r := singleControlReport(Control{
		Bits:  hiddesc.BitRange{Start: 0, End: 1},
		Kind:  KindToggle,
		Max:   1,
		Value: 1.0,
	}, 9)
	assert.Equal(t, []byte{0x00, 0x80}, Encode(r))

	r.Controls[0].Value = 0.0
	assert.Equal(t, []byte{0x00, 0x00}, Encode(r))
}

func TestEncodeReportID(t *testing.T) {
	r := Report{
		ID:         5,
		SizeInBits: 16,
		Controls: []Control{{
			Bits:  hiddesc.BitRange{Start: 7, End: 8},
			Kind:  KindToggle,
			Value: 1.0,
		}},
	}
	assert.Equal(t, []byte{0x05, 0x01}, Encode(r))
}

func TestEncodeUnsignedBitOrder(t *testing.T) {
	r := singleControlReport(Control{
		Bits: hiddesc.BitRange{Start: 0, End: 8},
		Kind: KindUnsigned,
		Min:  0,
		Max:  255,
	}, 16)

	r.Controls[0].Value = 1.0
	assert.Equal(t, []byte{0x00, 0xFF}, Encode(r))

	// intValue 1 must land on the range's last bit (the field LSB).
	r.Controls[0].Value = 1.0 / 255.0
	assert.Equal(t, []byte{0x00, 0x01}, Encode(r))

	// intValue 128: only the range's first bit.
	r.Controls[0].Value = 128.0 / 255.0
	assert.Equal(t, []byte{0x00, 0x80}, Encode(r))
}

func TestEncodeRoundsHalfUp(t *testing.T) {
	r := singleControlReport(Control{
		Bits:  hiddesc.BitRange{Start: 0, End: 8},
		Kind:  KindUnsigned,
		Min:   0,
		Max:   10,
		Value: 0.55,
	}, 16)
	assert.Equal(t, []byte{0x00, 0x06}, Encode(r))
}

func TestEncodeClampEquivalence(t *testing.T) {
	kinds := []struct {
		name string
		c    Control
	}{
		{name: "toggle", c: Control{Bits: hiddesc.BitRange{Start: 0, End: 1}, Kind: KindToggle, Max: 1}},
		{name: "unsigned", c: Control{Bits: hiddesc.BitRange{Start: 0, End: 8}, Kind: KindUnsigned, Max: 200}},
		{name: "signed", c: Control{Bits: hiddesc.BitRange{Start: 0, End: 8}, Kind: KindSigned, Min: -100, Max: 100}},
	}
	for _, tc := range kinds {
		t.Run(tc.name, func(t *testing.T) {
			low := tc.c
			low.Value = -1.0
			zero := tc.c
			zero.Value = 0.0
			assert.Equal(t, Encode(singleControlReport(zero, 16)), Encode(singleControlReport(low, 16)))

			high := tc.c
			high.Value = 2.0
			one := tc.c
			one.Value = 1.0
			assert.Equal(t, Encode(singleControlReport(one, 16)), Encode(singleControlReport(high, 16)))
		})
	}
}

func TestEncodeZeroSkipsBitOperations(t *testing.T) {
	c := Control{
		Bits:  hiddesc.BitRange{Start: 0, End: 8},
		Kind:  KindUnsigned,
		Min:   0,
		Max:   255,
		Value: 0.0,
	}
	assert.Equal(t, []byte{0x00, 0x00}, Encode(singleControlReport(c, 16)))

	// A zero value performs no bit operation at all: a pre-filled
	// buffer stays untouched.
	raw := []byte{0xFF, 0xFF}
	encodeControl(bits.View(raw), &c)
	assert.Equal(t, []byte{0xFF, 0xFF}, raw)
}

func TestEncodeSignedTwosComplement(t *testing.T) {
	r := singleControlReport(Control{
		Bits: hiddesc.BitRange{Start: 0, End: 3},
		Kind: KindSigned,
		Min:  -4,
		Max:  3,
	}, 11)

	// value 0.0 -> intValue -4 -> 0b100 in 3 bits.
	assert.Equal(t, []byte{0x00, 0x80}, Encode(r))

	// value 1.0 -> intValue 3 -> 0b011.
	r.Controls[0].Value = 1.0
	assert.Equal(t, []byte{0x00, 0x60}, Encode(r))

	// midpoint rounds to -4 + round(7*0.5) = 0 -> all bits clear.
	r.Controls[0].Value = 0.5
	assert.Equal(t, []byte{0x00, 0x00}, Encode(r))
}

func TestEncodeMultiBitToggleBroadcast(t *testing.T) {
	r := singleControlReport(Control{
		Bits:  hiddesc.BitRange{Start: 2, End: 5},
		Kind:  KindToggle,
		Value: 0.3,
	}, 16)
	assert.Equal(t, []byte{0x00, 0x38}, Encode(r))
}

func TestEncodeDisjointControls(t *testing.T) {
	r := Report{
		ID:         0,
		SizeInBits: 16,
		Controls: []Control{
			{Bits: hiddesc.BitRange{Start: 0, End: 1}, Kind: KindToggle, Value: 1},
			{Bits: hiddesc.BitRange{Start: 4, End: 8}, Kind: KindUnsigned, Min: 0, Max: 15, Value: 1},
		},
	}
	require.Equal(t, []byte{0x00, 0x8F}, Encode(r))
}
