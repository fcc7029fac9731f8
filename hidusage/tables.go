package hidusage

// pages is the closed list of standard usage pages. Everything outside
// this map (reserved ranges, vendor-defined pages) is vendor territory.
// Wacom ships a published usage table despite living in the
// vendor-defined range, so it is part of the known set.
var pages = map[uint16]PageInfo{
	0x01: {Code: 0x01, Name: "Generic Desktop", Alias: "gd", Usages: genericDesktopUsages},
	0x02: {Code: 0x02, Name: "Simulation Controls", Alias: "sim"},
	0x03: {Code: 0x03, Name: "VR Controls", Alias: "vr"},
	0x04: {Code: 0x04, Name: "Sport Controls", Alias: "sport"},
	0x05: {Code: 0x05, Name: "Game Controls", Alias: "game"},
	0x06: {Code: 0x06, Name: "Generic Device Controls", Alias: "gdv"},
	0x07: {Code: 0x07, Name: "Keyboard/Keypad", Alias: "kb", Usages: ordinalUsageCollection{namePrefix: "Key"}},
	0x08: {Code: 0x08, Name: "LED", Alias: "led", Usages: ledUsages},
	0x09: {Code: 0x09, Name: "Button", Alias: "btn", Usages: ordinalUsageCollection{namePrefix: "Button"}},
	0x0A: {Code: 0x0A, Name: "Ordinal", Alias: "ord", Usages: ordinalUsageCollection{namePrefix: "Instance"}},
	0x0B: {Code: 0x0B, Name: "Telephony Device", Alias: "tel"},
	0x0C: {Code: 0x0C, Name: "Consumer", Alias: "con", Usages: consumerUsages},
	0x0D: {Code: 0x0D, Name: "Digitizers", Alias: "dig"},
	0x0E: {Code: 0x0E, Name: "Haptics", Alias: "hap"},
	0x0F: {Code: 0x0F, Name: "Physical Input Device", Alias: "pid"},
	0x10: {Code: 0x10, Name: "Unicode", Alias: "uni"},
	0x11: {Code: 0x11, Name: "SoC", Alias: "soc"},
	0x12: {Code: 0x12, Name: "Eye and Head Trackers", Alias: "eht"},
	0x14: {Code: 0x14, Name: "Auxiliary Display", Alias: "aux"},
	0x20: {Code: 0x20, Name: "Sensors", Alias: "sen"},
	0x40: {Code: 0x40, Name: "Medical Instrument", Alias: "med"},
	0x41: {Code: 0x41, Name: "Braille Display", Alias: "bra"},
	0x59: {Code: 0x59, Name: "Lighting and Illumination", Alias: "lamp"},
	0x80: {Code: 0x80, Name: "Monitor", Alias: "mon"},
	0x81: {Code: 0x81, Name: "Monitor Enumerated", Alias: "mone"},
	0x82: {Code: 0x82, Name: "VESA Virtual Controls", Alias: "vesa"},
	0x84: {Code: 0x84, Name: "Power", Alias: "pow"},
	0x85: {Code: 0x85, Name: "Battery System", Alias: "bat"},
	0x8C: {Code: 0x8C, Name: "Barcode Scanner", Alias: "bar"},
	0x8D: {Code: 0x8D, Name: "Scales", Alias: "scale"},
	0x8E: {Code: 0x8E, Name: "Magnetic Stripe Reader", Alias: "msr"},
	0x90: {Code: 0x90, Name: "Camera Control", Alias: "cam"},
	0x91: {Code: 0x91, Name: "Arcade", Alias: "arc"},
	0xF1D0: {Code: 0xF1D0, Name: "FIDO Alliance", Alias: "fido"},
	0xFF0D: {Code: 0xFF0D, Name: "Wacom", Alias: "wacom"},
}

var ledUsages = newUsageTable().
	usage(0x01, "Num Lock").
	usage(0x02, "Caps Lock").
	usage(0x03, "Scroll Lock").
	usage(0x04, "Compose").
	usage(0x05, "Kana").
	usage(0x06, "Power").
	usage(0x07, "Shift").
	usage(0x08, "Do Not Disturb").
	usage(0x09, "Mute").
	usage(0x0A, "Tone Enable").
	usage(0x0B, "High Cut Filter").
	usage(0x0C, "Low Cut Filter").
	usage(0x0D, "Equalizer Enable").
	usage(0x0E, "Sound Field On").
	usage(0x0F, "Surround On").
	usage(0x10, "Repeat").
	usage(0x11, "Stereo").
	usage(0x12, "Sampling Rate Detect").
	usage(0x13, "Spinning").
	usage(0x14, "CAV").
	usage(0x15, "CLV").
	usage(0x16, "Recording Format Detect").
	usage(0x17, "Off-Hook").
	usage(0x18, "Ring").
	usage(0x19, "Message Waiting").
	usage(0x1A, "Data Mode").
	usage(0x1B, "Battery Operation").
	usage(0x1C, "Battery OK").
	usage(0x1D, "Battery Low").
	usage(0x1E, "Speaker").
	usage(0x1F, "Head Set").
	usage(0x20, "Hold").
	usage(0x21, "Microphone").
	usage(0x22, "Coverage").
	usage(0x23, "Night Mode").
	usage(0x24, "Send Calls").
	usage(0x25, "Call Pickup").
	usage(0x26, "Conference").
	usage(0x27, "Stand-by").
	usage(0x28, "Camera On").
	usage(0x29, "Camera Off").
	usage(0x2A, "On-Line").
	usage(0x2B, "Off-Line").
	usage(0x2C, "Busy").
	usage(0x2D, "Ready").
	usage(0x2E, "Paper-Out").
	usage(0x2F, "Paper-Jam").
	usage(0x30, "Remote").
	usage(0x31, "Forward").
	usage(0x32, "Reverse").
	usage(0x33, "Stop").
	usage(0x34, "Rewind").
	usage(0x35, "Fast Forward").
	usage(0x36, "Play").
	usage(0x37, "Pause").
	usage(0x38, "Record").
	usage(0x39, "Error").
	usage(0x3A, "Usage Selected Indicator").
	usage(0x3B, "Usage In Use Indicator").
	usage(0x3C, "Usage Multi Mode Indicator").
	usage(0x3D, "Indicator On").
	usage(0x3E, "Indicator Flash").
	usage(0x3F, "Indicator Slow Blink").
	usage(0x40, "Indicator Fast Blink").
	usage(0x41, "Indicator Off").
	usage(0x42, "Flash On Time").
	usage(0x43, "Slow Blink On Time").
	usage(0x44, "Slow Blink Off Time").
	usage(0x45, "Fast Blink On Time").
	usage(0x46, "Fast Blink Off Time").
	usage(0x47, "Usage Indicator Color").
	usage(0x48, "Indicator Red").
	usage(0x49, "Indicator Green").
	usage(0x4A, "Indicator Amber").
	usage(0x4B, "Generic Indicator")

var genericDesktopUsages = newUsageTable().
	usage(0x01, "Pointer").
	usage(0x02, "Mouse").
	usage(0x06, "Keyboard").
	usage(0x07, "Keypad").
	usage(0x30, "X").
	usage(0x31, "Y").
	usage(0x32, "Z").
	usage(0x36, "Slider").
	usage(0x37, "Dial").
	usage(0x38, "Wheel").
	usage(0x39, "Hat Switch").
	usage(0x3B, "Byte Count").
	usage(0x80, "System Control")

var consumerUsages = newUsageTable().
	usage(0x01, "Consumer Control").
	usage(0xB0, "Play").
	usage(0xB1, "Pause").
	usage(0xB2, "Record").
	usage(0xB3, "Fast Forward").
	usage(0xB4, "Rewind").
	usage(0xCD, "Play/Pause").
	usage(0xE2, "Mute").
	usage(0xE9, "Volume Increment").
	usage(0xEA, "Volume Decrement")
