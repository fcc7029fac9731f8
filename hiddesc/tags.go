package hiddesc

// Short item prefixes. The low two bits of every item byte encode the
// payload size, so the constants below carry only the upper six bits.
const (
	tagInput         tag = 0x80
	tagOutput        tag = 0x90
	tagFeature       tag = 0xB0
	tagCollection    tag = 0xA0
	tagEndCollection tag = 0xC0

	tagUsagePage       tag = 0x04
	tagLogicalMinimum  tag = 0x14
	tagLogicalMaximum  tag = 0x24
	tagPhysicalMinimum tag = 0x34
	tagPhysicalMaximum tag = 0x44
	tagUnitExponent    tag = 0x54
	tagUnit            tag = 0x64
	tagReportSize      tag = 0x74
	tagReportID        tag = 0x84
	tagReportCount     tag = 0x94
	tagPush            tag = 0xA4
	tagPop             tag = 0xB4

	tagUsage             tag = 0x08
	tagUsageMinimum      tag = 0x18
	tagUsageMaximum      tag = 0x28
	tagDesignatorIndex   tag = 0x38
	tagDesignatorMinimum tag = 0x48
	tagDesignatorMaximum tag = 0x58
	tagStringIndex       tag = 0x68
	tagStringMinimum     tag = 0x78
	tagStringMaximum     tag = 0x88
	tagDelimiter         tag = 0xA8
)

type tag uint8

func (t tag) prefix() tag {
	return t & 0xFC
}

// payloadLen maps the size bits to a byte count (0, 1, 2 or 4).
func (t tag) payloadLen() int {
	switch t & 0x03 {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	}
	return 0
}
