// Package hidusage maps HID usage pages and usage ids to human-readable
// names and classifies pages against the standard usage-table taxonomy.
package hidusage

import (
	"fmt"
	"strconv"

	"github.com/iancoleman/strcase"
)

type UsageInfo struct {
	ID    uint16
	Name  string
	Alias string
}

type PageInfo struct {
	Code   uint16
	Name   string
	Alias  string
	Usages UsageCollection
}

type UsageCollection interface {
	Get(id uint16) (UsageInfo, bool)
	ByAlias(alias string) (UsageInfo, bool)
}

var pageAliasMap = map[string]uint16{}

func init() {
	for code, page := range pages {
		pageAliasMap[page.Alias] = code
	}
}

func PageByCode(code uint16) (PageInfo, bool) {
	page, ok := pages[code]
	return page, ok
}

func PageByAlias(alias string) (PageInfo, bool) {
	code, ok := pageAliasMap[alias]
	if !ok {
		return PageInfo{}, false
	}
	return pages[code], true
}

// IsVendor reports whether a usage page falls outside the standard
// taxonomy. Unknown pages are vendor by definition: controls on them
// are unsafe to expose for blind manipulation.
func IsVendor(page uint16) bool {
	_, ok := pages[page]
	return !ok
}

// Name returns the usage-table name for a usage, when one exists.
func Name(page, id uint16) (string, bool) {
	pageInfo, ok := pages[page]
	if !ok || pageInfo.Usages == nil {
		return "", false
	}
	info, ok := pageInfo.Usages.Get(id)
	if !ok {
		return "", false
	}
	return info.Name, true
}

// Format renders a usage as a display label, falling back to hex codes
// for anything the tables do not cover.
func Format(page, id uint16) string {
	pageInfo, ok := pages[page]
	if !ok {
		return fmt.Sprintf("0x%02x.0x%02x", page, id)
	}
	if pageInfo.Usages == nil {
		return fmt.Sprintf("%s.0x%02x", pageInfo.Alias, id)
	}
	info, ok := pageInfo.Usages.Get(id)
	if !ok {
		return fmt.Sprintf("%s.0x%02x", pageInfo.Alias, id)
	}
	return fmt.Sprintf("%s.%s", pageInfo.Alias, info.Alias)
}

// ordinalUsageCollection names usages by position, for pages like
// Button and Ordinal where ids carry no meaning beyond their index.
type ordinalUsageCollection struct {
	namePrefix string
}

func (o ordinalUsageCollection) Get(id uint16) (UsageInfo, bool) {
	return UsageInfo{
		ID:    id,
		Name:  fmt.Sprintf("%s %d", o.namePrefix, id),
		Alias: strconv.FormatInt(int64(id), 10),
	}, true
}

func (o ordinalUsageCollection) ByAlias(alias string) (UsageInfo, bool) {
	code, err := strconv.ParseInt(alias, 10, 16)
	if err != nil {
		return UsageInfo{}, false
	}
	return UsageInfo{
		ID:    uint16(code),
		Name:  fmt.Sprintf("%s %d", o.namePrefix, code),
		Alias: alias,
	}, true
}

func newUsageTable() usageTable {
	return usageTable{
		usages:   make(map[uint16]UsageInfo),
		aliasMap: make(map[string]UsageInfo),
	}
}

type usageTable struct {
	usages   map[uint16]UsageInfo
	aliasMap map[string]UsageInfo
}

func (u usageTable) Get(id uint16) (UsageInfo, bool) {
	info, ok := u.usages[id]
	return info, ok
}

func (u usageTable) ByAlias(alias string) (UsageInfo, bool) {
	info, ok := u.aliasMap[alias]
	return info, ok
}

func (u usageTable) usage(id uint16, name string) usageTable {
	alias := strcase.ToCamel(name)
	u.usages[id] = UsageInfo{
		ID:    id,
		Name:  name,
		Alias: alias,
	}
	u.aliasMap[alias] = u.usages[id]
	return u
}
