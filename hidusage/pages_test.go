package hidusage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVendor(t *testing.T) {
	assert.False(t, IsVendor(0x08), "LED page is standard")
	assert.False(t, IsVendor(0x01), "generic desktop page is standard")
	assert.False(t, IsVendor(0xF1D0), "FIDO page is standard")
	assert.True(t, IsVendor(0xFF00), "vendor-defined range")
	assert.True(t, IsVendor(0x13), "reserved page")
	assert.True(t, IsVendor(0x0000), "undefined page")
}

func TestName(t *testing.T) {
	name, ok := Name(0x08, 0x4B)
	assert.True(t, ok)
	assert.Equal(t, "Generic Indicator", name)

	name, ok = Name(0x08, 0x02)
	assert.True(t, ok)
	assert.Equal(t, "Caps Lock", name)

	name, ok = Name(0x09, 3)
	assert.True(t, ok)
	assert.Equal(t, "Button 3", name)

	_, ok = Name(0x08, 0xFF)
	assert.False(t, ok, "LED page has no usage 0xFF")

	_, ok = Name(0x02, 0x01)
	assert.False(t, ok, "simulation page carries no usage table")

	_, ok = Name(0xFF00, 0x01)
	assert.False(t, ok, "vendor page resolves nothing")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "led.CapsLock", Format(0x08, 0x02))
	assert.Equal(t, "led.0xf0", Format(0x08, 0xF0))
	assert.Equal(t, "sim.0x01", Format(0x02, 0x01))
	assert.Equal(t, "0xff00.0x01", Format(0xFF00, 0x01))
}

func TestPageLookups(t *testing.T) {
	page, ok := PageByAlias("led")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x08), page.Code)

	info, ok := page.Usages.ByAlias("NumLock")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x01), info.ID)

	_, ok = PageByAlias("nope")
	assert.False(t, ok)

	page, ok = PageByCode(0x0A)
	assert.True(t, ok)
	assert.Equal(t, "Ordinal", page.Name)
}
