package lights

import (
	"strconv"

	"github.com/glowctl/glowctl/hiddesc"
	"github.com/glowctl/glowctl/hidusage"
)

// StringSource resolves device-authored string-table entries. A nil
// source skips string lookups entirely.
type StringSource interface {
	IndexedString(index int) (string, bool)
}

// fallbackName labels controls whose string index and usage both
// resolve to nothing.
const fallbackName = "Unknown"

// Build flattens the output reports of a parsed descriptor into
// control lists. Vendor-classified usages are hidden, padding is
// skipped, and reports left without a single control are dropped.
func Build(desc hiddesc.Descriptor, strings StringSource) []Report {
	var result []Report
	for _, rep := range desc.Outputs() {
		report := Report{
			ID:         rep.ID,
			SizeInBits: rep.SizeInBits,
		}
		for _, field := range rep.Fields {
			switch field.Kind {
			case hiddesc.FieldVariable:
				if c, ok := buildVariable(field, strings); ok {
					report.Controls = append(report.Controls, c)
				}
			case hiddesc.FieldArray:
				report.Controls = append(report.Controls, buildArraySlots(field, strings)...)
			}
		}
		if len(report.Controls) > 0 {
			result = append(result, report)
		}
	}
	return result
}

func buildVariable(field hiddesc.Field, strings StringSource) (Control, bool) {
	if hidusage.IsVendor(field.Usage.Page()) || !field.Flags.IsVariable() {
		return Control{}, false
	}
	return Control{
		Bits: field.Bits,
		Kind: classify(field.Bits, field.LogicalMin),
		Min:  field.LogicalMin,
		Max:  field.LogicalMax,
		Name: resolveName(strings, field.StringIndex, field.Usage),
	}, true
}

// buildArraySlots divides an array field's bit span evenly across its
// declared usages and emits one control per non-vendor slot. Slot
// names carry a decimal position suffix; positions of 10 and above get
// multi-digit suffixes.
func buildArraySlots(field hiddesc.Field, strings StringSource) []Control {
	count := len(field.Usages)
	if count == 0 {
		return nil
	}
	span := uint32(field.Bits.Len() / count)
	if span == 0 {
		return nil
	}
	var controls []Control
	for i, usage := range field.Usages {
		if hidusage.IsVendor(usage.Page()) {
			continue
		}
		bits := hiddesc.BitRange{
			Start: field.Bits.Start + uint32(i)*span,
			End:   field.Bits.Start + uint32(i+1)*span,
		}
		strIndex := 0
		if i < len(field.StringIndexes) {
			strIndex = field.StringIndexes[i]
		}
		controls = append(controls, Control{
			Bits: bits,
			Kind: classify(bits, field.LogicalMin),
			Min:  field.LogicalMin,
			Max:  field.LogicalMax,
			Name: resolveName(strings, strIndex, usage) + " " + strconv.Itoa(i),
		})
	}
	return controls
}

// classify picks the value kind. Single-bit ranges are always toggles,
// whatever logical range the descriptor declares. Negative logical
// minimums take the signed path so the codec can emit proper two's
// complement.
func classify(bits hiddesc.BitRange, logicalMin int32) Kind {
	if bits.Len() == 1 {
		return KindToggle
	}
	if logicalMin < 0 {
		return KindSigned
	}
	return KindUnsigned
}

// resolveName looks up a control label: the device string table wins,
// then the standard usage tables, then the literal fallback.
func resolveName(strings StringSource, stringIndex int, usage hiddesc.Usage) string {
	if stringIndex > 0 && strings != nil {
		if s, ok := strings.IndexedString(stringIndex); ok && s != "" {
			return s
		}
	}
	if name, ok := hidusage.Name(usage.Page(), usage.ID()); ok {
		return name
	}
	return fallbackName
}
