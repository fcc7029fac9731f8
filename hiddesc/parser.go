package hiddesc

import (
	"errors"
	"fmt"
)

// Parse decodes a raw report descriptor into per-report field lists.
// It implements the short-item state machine from the HID spec:
// global items persist across main items (with push/pop), local items
// reset after every main item.
func Parse(data []byte) (Descriptor, error) {
	p := &parser{
		reports: make(map[reportKey]*Report),
	}
	i := 0
	for i < len(data) {
		item := tag(data[i])
		if item == 0xFE {
			// Long item: one size byte, one tag byte, then payload.
			// Nothing we consume is encoded as a long item, skip it.
			if i+2 >= len(data) {
				return Descriptor{}, errors.New("hiddesc: truncated long item")
			}
			i += 3 + int(data[i+1])
			continue
		}
		plen := item.payloadLen()
		if i+1+plen > len(data) {
			return Descriptor{}, fmt.Errorf("hiddesc: truncated item 0x%02x", byte(item))
		}
		payload := data[i+1 : i+1+plen]
		if err := p.item(item.prefix(), payload); err != nil {
			return Descriptor{}, err
		}
		i += 1 + plen
	}
	if p.collectionDepth != 0 {
		return Descriptor{}, errors.New("hiddesc: unterminated collection")
	}
	return p.descriptor(), nil
}

type reportKey struct {
	typ ReportType
	id  uint8
}

type globalState struct {
	usagePage   uint16
	logicalMin  int32
	logicalMax  int32
	reportID    uint8
	reportSize  uint32
	reportCount uint32
}

type localState struct {
	usages      []Usage
	usageMin    uint16
	usageMax    uint16
	stringIndex int
	stringMin   int
	stringMax   int
}

type parser struct {
	global      globalState
	globalStack []globalState
	local       localState

	collectionDepth int
	reports         map[reportKey]*Report
	order           []reportKey
}

func (p *parser) descriptor() Descriptor {
	desc := Descriptor{Reports: make([]Report, 0, len(p.order))}
	for _, key := range p.order {
		desc.Reports = append(desc.Reports, *p.reports[key])
	}
	return desc
}

func (p *parser) item(t tag, payload []byte) error {
	switch t {
	case tagInput:
		return p.mainItem(ReportTypeInput, payload)
	case tagOutput:
		return p.mainItem(ReportTypeOutput, payload)
	case tagFeature:
		return p.mainItem(ReportTypeFeature, payload)
	case tagCollection:
		if len(payload) != 1 {
			return errors.New("hiddesc: collection: bad payload")
		}
		p.collectionDepth++
		p.local = localState{}
	case tagEndCollection:
		if p.collectionDepth == 0 {
			return errors.New("hiddesc: end collection: no open collection")
		}
		p.collectionDepth--
		p.local = localState{}

	case tagUsagePage:
		p.global.usagePage = uint16(itemUint32(payload))
	case tagLogicalMinimum:
		p.global.logicalMin = itemInt32(payload)
	case tagLogicalMaximum:
		p.global.logicalMax = itemInt32(payload)
	case tagPhysicalMinimum, tagPhysicalMaximum, tagUnitExponent, tagUnit:
		// Physical ranges and units do not affect the control model.
	case tagReportSize:
		p.global.reportSize = itemUint32(payload)
	case tagReportID:
		p.global.reportID = uint8(itemUint32(payload))
	case tagReportCount:
		p.global.reportCount = itemUint32(payload)
	case tagPush:
		p.globalStack = append(p.globalStack, p.global)
	case tagPop:
		if len(p.globalStack) == 0 {
			return errors.New("hiddesc: pop: global stack is empty")
		}
		p.global = p.globalStack[len(p.globalStack)-1]
		p.globalStack = p.globalStack[:len(p.globalStack)-1]

	case tagUsage:
		// A four-byte usage carries its own page in the upper half.
		if len(payload) == 4 {
			p.local.usages = append(p.local.usages, Usage(itemUint32(payload)))
		} else {
			p.local.usages = append(p.local.usages, NewUsage(p.global.usagePage, uint16(itemUint32(payload))))
		}
	case tagUsageMinimum:
		p.local.usageMin = uint16(itemUint32(payload))
	case tagUsageMaximum:
		p.local.usageMax = uint16(itemUint32(payload))
	case tagStringIndex:
		p.local.stringIndex = int(itemUint32(payload))
	case tagStringMinimum:
		p.local.stringMin = int(itemUint32(payload))
	case tagStringMaximum:
		p.local.stringMax = int(itemUint32(payload))
	case tagDesignatorIndex, tagDesignatorMinimum, tagDesignatorMaximum, tagDelimiter:
		// Designators describe physical location, not control layout.

	default:
		return fmt.Errorf("hiddesc: unknown item 0x%02x", byte(t))
	}
	return nil
}

func (p *parser) mainItem(typ ReportType, payload []byte) error {
	if p.collectionDepth == 0 {
		return fmt.Errorf("hiddesc: %s item outside of a collection", typ)
	}
	if len(payload) == 0 {
		return fmt.Errorf("hiddesc: %s item without flags", typ)
	}
	flags := DataFlags(itemUint32(payload))
	defer func() {
		p.local = localState{}
	}()

	size := p.global.reportSize
	count := p.global.reportCount
	if size == 0 || count == 0 {
		return nil
	}

	rep := p.report(typ, p.global.reportID)
	offset := uint32(rep.SizeInBits - reportIDBits)

	switch {
	case flags.IsConstant():
		rep.Fields = append(rep.Fields, Field{
			Kind:  FieldPadding,
			Bits:  BitRange{Start: offset, End: offset + size*count},
			Flags: flags,
		})
	case flags.IsVariable():
		// One field per report-count element, each report-size bits.
		for i := uint32(0); i < count; i++ {
			rep.Fields = append(rep.Fields, Field{
				Kind:        FieldVariable,
				Bits:        BitRange{Start: offset + i*size, End: offset + (i+1)*size},
				Flags:       flags,
				LogicalMin:  p.global.logicalMin,
				LogicalMax:  p.global.logicalMax,
				Usage:       p.usageAt(int(i)),
				StringIndex: p.stringAt(int(i)),
			})
		}
	default:
		usages, strIndexes, err := p.slotLists()
		if err != nil {
			return err
		}
		rep.Fields = append(rep.Fields, Field{
			Kind:          FieldArray,
			Bits:          BitRange{Start: offset, End: offset + size*count},
			Flags:         flags,
			LogicalMin:    p.global.logicalMin,
			LogicalMax:    p.global.logicalMax,
			Usages:        usages,
			StringIndexes: strIndexes,
		})
	}
	rep.SizeInBits += int(size * count)
	return nil
}

const reportIDBits = 8

func (p *parser) report(typ ReportType, id uint8) *Report {
	key := reportKey{typ: typ, id: id}
	rep, ok := p.reports[key]
	if !ok {
		rep = &Report{
			ID:         id,
			Type:       typ,
			SizeInBits: reportIDBits,
		}
		p.reports[key] = rep
		p.order = append(p.order, key)
	}
	return rep
}

// usageAt resolves the usage for element i of a variable item: the
// explicit usage list first (last entry repeats), then the usage
// min/max range (clamped at the maximum).
func (p *parser) usageAt(i int) Usage {
	if n := len(p.local.usages); n > 0 {
		if i >= n {
			i = n - 1
		}
		return p.local.usages[i]
	}
	if p.local.usageMax >= p.local.usageMin && p.local.usageMax > 0 {
		id := int(p.local.usageMin) + i
		if id > int(p.local.usageMax) {
			id = int(p.local.usageMax)
		}
		return NewUsage(p.global.usagePage, uint16(id))
	}
	return NewUsage(p.global.usagePage, 0)
}

func (p *parser) stringAt(i int) int {
	if p.local.stringMax >= p.local.stringMin && p.local.stringMax > 0 {
		idx := p.local.stringMin + i
		if idx > p.local.stringMax {
			return 0
		}
		return idx
	}
	return p.local.stringIndex
}

// slotLists expands the local usage declarations of an array item into
// per-slot usage and string-index lists of equal length.
func (p *parser) slotLists() ([]Usage, []int, error) {
	usages := make([]Usage, 0, len(p.local.usages))
	usages = append(usages, p.local.usages...)
	if p.local.usageMax > 0 {
		if p.local.usageMax < p.local.usageMin {
			return nil, nil, fmt.Errorf("hiddesc: usage maximum 0x%02x below minimum 0x%02x", p.local.usageMax, p.local.usageMin)
		}
		for id := uint32(p.local.usageMin); id <= uint32(p.local.usageMax); id++ {
			usages = append(usages, NewUsage(p.global.usagePage, uint16(id)))
		}
	}
	strIndexes := make([]int, len(usages))
	for i := range strIndexes {
		strIndexes[i] = p.stringAt(i)
	}
	return usages, strIndexes, nil
}

func itemUint32(payload []byte) uint32 {
	var val uint32
	for i, b := range payload {
		val |= uint32(b) << (8 * i)
	}
	return val
}

func itemInt32(payload []byte) int32 {
	switch len(payload) {
	case 1:
		return int32(int8(payload[0]))
	case 2:
		return int32(int16(uint16(payload[0]) | uint16(payload[1])<<8))
	default:
		return int32(itemUint32(payload))
	}
}
