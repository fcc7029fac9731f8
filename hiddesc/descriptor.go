// Package hiddesc parses HID report descriptors into flat, per-report
// lists of typed fields. Collections are walked but not preserved: the
// consumers of this package address controls by report id and bit
// position, not by collection hierarchy.
package hiddesc

// ReportType distinguishes the three report directions a descriptor
// can declare.
type ReportType uint8

const (
	ReportTypeInput ReportType = iota
	ReportTypeOutput
	ReportTypeFeature
)

func (t ReportType) String() string {
	switch t {
	case ReportTypeInput:
		return "input"
	case ReportTypeOutput:
		return "output"
	case ReportTypeFeature:
		return "feature"
	}
	return "unknown"
}

// NewUsage combines a usage page and usage id into a single value.
func NewUsage(page, id uint16) Usage {
	return Usage(uint32(page)<<16 | uint32(id))
}

// Usage is a combination of usage page and usage id.
type Usage uint32

func (u Usage) Page() uint16 {
	return uint16(u >> 16)
}

func (u Usage) ID() uint16 {
	return uint16(u)
}

// BitRange is a half-open range of bit offsets into a report's data
// area, MSB-first: bit 0 is the most significant bit of the first data
// byte. The report-id prefix byte is not part of the data area.
type BitRange struct {
	Start uint32
	End   uint32
}

func (r BitRange) Len() int {
	return int(r.End) - int(r.Start)
}

func (r BitRange) Overlaps(other BitRange) bool {
	return r.Start < other.End && other.Start < r.End
}

type DataFlags uint32

const (
	DataFlagConstant DataFlags = 1 << iota // 0 = Data, 1 = Constant
	DataFlagVariable                       // 0 = Array, 1 = Variable
	DataFlagRelative                       // 0 = Absolute, 1 = Relative
	DataFlagWrap
	DataFlagNonLinear
	DataFlagNoPreferred
	DataFlagNullState
	DataFlagVolatile
	DataFlagBufferedBytes
)

func (d DataFlags) IsConstant() bool {
	return d&DataFlagConstant != 0
}

func (d DataFlags) IsVariable() bool {
	return d&DataFlagVariable != 0
}

func (d DataFlags) IsRelative() bool {
	return d&DataFlagRelative != 0
}

type FieldKind uint8

const (
	// FieldVariable is one independently addressable control.
	FieldVariable FieldKind = iota
	// FieldArray is a choice among several usages sharing one bit span.
	FieldArray
	// FieldPadding is a constant filler with no semantic content.
	FieldPadding
)

func (k FieldKind) String() string {
	switch k {
	case FieldVariable:
		return "variable"
	case FieldArray:
		return "array"
	case FieldPadding:
		return "padding"
	}
	return "unknown"
}

// Field is one parsed report field. Variable fields carry exactly one
// usage and an optional string-table index (0 = none). Array fields
// carry one usage and string index per selectable slot.
type Field struct {
	Kind       FieldKind
	Bits       BitRange
	Flags      DataFlags
	LogicalMin int32
	LogicalMax int32

	Usage       Usage
	StringIndex int

	Usages        []Usage
	StringIndexes []int
}

// Report is an ordered list of fields sharing one report id and
// direction. SizeInBits counts the whole transmitted report, including
// the 8-bit report-id prefix that byte 0 of the on-wire buffer always
// carries (id 0 when the device declares none).
type Report struct {
	ID         uint8
	Type       ReportType
	SizeInBits int
	Fields     []Field
}

type Descriptor struct {
	Reports []Report
}

// Outputs returns the output reports in descriptor order.
func (d Descriptor) Outputs() []Report {
	var out []Report
	for _, r := range d.Reports {
		if r.Type == ReportTypeOutput {
			out = append(out, r)
		}
	}
	return out
}
