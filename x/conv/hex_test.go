package conv

import "testing"

func TestHex(t *testing.T) {
	cases := []struct {
		fn   func(b []byte) []byte
		want string
	}{
		{func(b []byte) []byte { return U16Hex(b, 0x0511) }, "0511"},
		{func(b []byte) []byte { return U16Hex(b, 0xBEEF) }, "BEEF"},
		{func(b []byte) []byte { return U8Hex(b, 0x0C) }, "0C"},
		{func(b []byte) []byte { return Hex(b, 0x12345678, 8) }, "12345678"},
	}
	for i, c := range cases {
		var b [8]byte
		if got := string(c.fn(b[:])); got != c.want {
			t.Fatalf("case %d: got %q want %q", i, got, c.want)
		}
	}
	var short [2]byte
	if got := U16Hex(short[:], 0x1234); len(got) != 0 {
		t.Fatalf("short buffer should yield empty slice, got %q", got)
	}
}
