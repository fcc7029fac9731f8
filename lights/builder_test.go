package lights

import (
	"testing"

	"github.com/glowctl/glowctl/hiddesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStrings map[int]string

func (m mapStrings) IndexedString(index int) (string, bool) {
	s, ok := m[index]
	return s, ok
}

func outputReport(id uint8, sizeInBits int, fields ...hiddesc.Field) hiddesc.Descriptor {
	return hiddesc.Descriptor{
		Reports: []hiddesc.Report{{
			ID:         id,
			Type:       hiddesc.ReportTypeOutput,
			SizeInBits: sizeInBits,
			Fields:     fields,
		}},
	}
}

func TestBuildSingleToggle(t *testing.T) {
	desc := outputReport(0, 9, hiddesc.Field{
		Kind:        hiddesc.FieldVariable,
		Bits:        hiddesc.BitRange{Start: 0, End: 1},
		Flags:       hiddesc.DataFlagVariable,
		LogicalMin:  0,
		LogicalMax:  1,
		Usage:       hiddesc.NewUsage(0x08, 0x4B),
		StringIndex: 3, // not present on the device
	})
	reports := Build(desc, mapStrings{})
	require.Len(t, reports, 1)
	require.Equal(t, uint8(0), reports[0].ID)
	require.Equal(t, 9, reports[0].SizeInBits)
	require.Len(t, reports[0].Controls, 1)

	c := reports[0].Controls[0]
	assert.Equal(t, KindToggle, c.Kind)
	assert.Equal(t, "Generic Indicator", c.Name)
	assert.Equal(t, hiddesc.BitRange{Start: 0, End: 1}, c.Bits)
	assert.Equal(t, float32(0), c.Value)
}

func TestBuildThreeSlotArray(t *testing.T) {
	desc := outputReport(0, 14, hiddesc.Field{
		Kind:       hiddesc.FieldArray,
		Bits:       hiddesc.BitRange{Start: 0, End: 6},
		LogicalMin: 0,
		LogicalMax: 3,
		Usages: []hiddesc.Usage{
			hiddesc.NewUsage(0x08, 0x48),
			hiddesc.NewUsage(0x08, 0x49),
			hiddesc.NewUsage(0x08, 0x4A),
		},
		StringIndexes: []int{0, 0, 0},
	})
	reports := Build(desc, nil)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Controls, 3)

	expected := []struct {
		name string
		bits hiddesc.BitRange
	}{
		{name: "Indicator Red 0", bits: hiddesc.BitRange{Start: 0, End: 2}},
		{name: "Indicator Green 1", bits: hiddesc.BitRange{Start: 2, End: 4}},
		{name: "Indicator Amber 2", bits: hiddesc.BitRange{Start: 4, End: 6}},
	}
	for i, c := range reports[0].Controls {
		assert.Equal(t, KindUnsigned, c.Kind)
		assert.Equal(t, expected[i].name, c.Name)
		assert.Equal(t, expected[i].bits, c.Bits)
		assert.Equal(t, int32(3), c.Max)
	}
}

func TestBuildDropsAllVendorReport(t *testing.T) {
	desc := outputReport(0, 16, hiddesc.Field{
		Kind:  hiddesc.FieldVariable,
		Bits:  hiddesc.BitRange{Start: 0, End: 8},
		Flags: hiddesc.DataFlagVariable,
		Usage: hiddesc.NewUsage(0xFF00, 0x01),
	})
	assert.Empty(t, Build(desc, nil))
}

func TestBuildUnknownPageIsVendor(t *testing.T) {
	// Page 0x13 is reserved: unresolvable usages never surface.
	desc := outputReport(0, 16, hiddesc.Field{
		Kind:  hiddesc.FieldVariable,
		Bits:  hiddesc.BitRange{Start: 0, End: 8},
		Flags: hiddesc.DataFlagVariable,
		Usage: hiddesc.NewUsage(0x13, 0x01),
	})
	assert.Empty(t, Build(desc, nil))
}

func TestBuildSkipsNonVariableAttribute(t *testing.T) {
	desc := outputReport(0, 16, hiddesc.Field{
		Kind:  hiddesc.FieldVariable,
		Bits:  hiddesc.BitRange{Start: 0, End: 8},
		Flags: 0,
		Usage: hiddesc.NewUsage(0x08, 0x4B),
	})
	assert.Empty(t, Build(desc, nil))
}

func TestBuildSkipsPadding(t *testing.T) {
	desc := outputReport(0, 16, hiddesc.Field{
		Kind: hiddesc.FieldPadding,
		Bits: hiddesc.BitRange{Start: 0, End: 8},
	})
	assert.Empty(t, Build(desc, nil))
}

func TestTogglePrecedenceOverLogicalRange(t *testing.T) {
	desc := outputReport(0, 9, hiddesc.Field{
		Kind:       hiddesc.FieldVariable,
		Bits:       hiddesc.BitRange{Start: 0, End: 1},
		Flags:      hiddesc.DataFlagVariable,
		LogicalMin: 0,
		LogicalMax: 5,
		Usage:      hiddesc.NewUsage(0x08, 0x06),
	})
	reports := Build(desc, nil)
	require.Len(t, reports, 1)
	assert.Equal(t, KindToggle, reports[0].Controls[0].Kind)
}

func TestSignedClassification(t *testing.T) {
	desc := outputReport(0, 16, hiddesc.Field{
		Kind:       hiddesc.FieldVariable,
		Bits:       hiddesc.BitRange{Start: 0, End: 8},
		Flags:      hiddesc.DataFlagVariable,
		LogicalMin: -127,
		LogicalMax: 127,
		Usage:      hiddesc.NewUsage(0x08, 0x42),
	})
	reports := Build(desc, nil)
	require.Len(t, reports, 1)
	assert.Equal(t, KindSigned, reports[0].Controls[0].Kind)
}

func TestNameResolutionPriority(t *testing.T) {
	field := func(stringIndex int, usage hiddesc.Usage) hiddesc.Descriptor {
		return outputReport(0, 9, hiddesc.Field{
			Kind:        hiddesc.FieldVariable,
			Bits:        hiddesc.BitRange{Start: 0, End: 1},
			Flags:       hiddesc.DataFlagVariable,
			LogicalMax:  1,
			Usage:       usage,
			StringIndex: stringIndex,
		})
	}
	strings := mapStrings{4: "Layer Indicator"}

	// Device string table wins over the usage table.
	reports := Build(field(4, hiddesc.NewUsage(0x08, 0x02)), strings)
	require.Len(t, reports, 1)
	assert.Equal(t, "Layer Indicator", reports[0].Controls[0].Name)

	// Missing string entry falls back to the usage name.
	reports = Build(field(9, hiddesc.NewUsage(0x08, 0x02)), strings)
	require.Len(t, reports, 1)
	assert.Equal(t, "Caps Lock", reports[0].Controls[0].Name)

	// No string, no named usage: literal fallback.
	reports = Build(field(0, hiddesc.NewUsage(0x08, 0xF0)), strings)
	require.Len(t, reports, 1)
	assert.Equal(t, "Unknown", reports[0].Controls[0].Name)
}

func TestArrayVendorSlotSkipped(t *testing.T) {
	desc := outputReport(0, 14, hiddesc.Field{
		Kind:       hiddesc.FieldArray,
		Bits:       hiddesc.BitRange{Start: 0, End: 6},
		LogicalMax: 3,
		Usages: []hiddesc.Usage{
			hiddesc.NewUsage(0x08, 0x48),
			hiddesc.NewUsage(0xFF00, 0x01),
			hiddesc.NewUsage(0x08, 0x4A),
		},
	})
	reports := Build(desc, nil)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Controls, 2)
	// The vendor slot keeps its bit span; neighbours do not shift.
	assert.Equal(t, hiddesc.BitRange{Start: 0, End: 2}, reports[0].Controls[0].Bits)
	assert.Equal(t, hiddesc.BitRange{Start: 4, End: 6}, reports[0].Controls[1].Bits)
	assert.Equal(t, "Indicator Amber 2", reports[0].Controls[1].Name)
}

func TestArrayManySlotsMultiDigitSuffix(t *testing.T) {
	usages := make([]hiddesc.Usage, 12)
	for i := range usages {
		usages[i] = hiddesc.NewUsage(0x09, uint16(i+1))
	}
	desc := outputReport(0, 8+12, hiddesc.Field{
		Kind:       hiddesc.FieldArray,
		Bits:       hiddesc.BitRange{Start: 0, End: 12},
		LogicalMax: 1,
		Usages:     usages,
	})
	reports := Build(desc, nil)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Controls, 12)
	assert.Equal(t, "Button 11 10", reports[0].Controls[10].Name)
	assert.Equal(t, "Button 12 11", reports[0].Controls[11].Name)
}
