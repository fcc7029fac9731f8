package bits

import (
	"testing"
)

func TestMsbFirstAddressing(t *testing.T) {
	tests := []struct {
		name   string
		set    []int
		result string
	}{
		{
			name:   "first bit is msb of byte zero",
			set:    []int{0},
			result: "10000000 00000000",
		},
		{
			name:   "bit eight is msb of byte one",
			set:    []int{8},
			result: "00000000 10000000",
		},
		{
			name:   "bit seven is lsb of byte zero",
			set:    []int{7},
			result: "00000001 00000000",
		},
		{
			name:   "multiple bits",
			set:    []int{1, 9, 15},
			result: "01000000 01000001",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New(16)
			for _, bit := range tc.set {
				b.Set(bit)
			}
			expected, err := FromString(tc.result)
			if err != nil {
				t.Fatal(err)
			}
			if !b.Equal(expected) {
				t.Fatalf("expected %s, got %s", expected, b)
			}
		})
	}
}

func TestSetClear(t *testing.T) {
	b := New(8)
	if !b.Set(3) {
		t.Fatal("setting a zero bit should report a change")
	}
	if b.Set(3) {
		t.Fatal("setting a set bit should not report a change")
	}
	if !b.IsSet(3) {
		t.Fatal("bit 3 should be set")
	}
	if !b.Clear(3) {
		t.Fatal("clearing a set bit should report a change")
	}
	if b.Clear(3) {
		t.Fatal("clearing a zero bit should not report a change")
	}
	if !b.IsEmpty() {
		t.Fatal("buffer should be empty")
	}
}

func TestSetToOutOfRange(t *testing.T) {
	b := New(8)
	if b.SetTo(8, true) || b.SetTo(-1, true) {
		t.Fatal("out of range bits must be ignored")
	}
	if !b.IsEmpty() {
		t.Fatal("buffer should be unchanged")
	}
}

func TestViewSharesStorage(t *testing.T) {
	raw := make([]byte, 2)
	b := View(raw)
	b.Set(8)
	if raw[1] != 0x80 {
		t.Fatalf("expected underlying slice to change, got %02x", raw[1])
	}
}

func TestNewRoundsUpToBytes(t *testing.T) {
	if got := New(9).Len(); got != 16 {
		t.Fatalf("expected 16 bits, got %d", got)
	}
}
