package timex

import (
	"testing"
	"time"
)

func TestMillis(t *testing.T) {
	cases := []struct {
		ms   int
		want time.Duration
	}{
		{0, 0},
		{-5, 0},
		{250, 250 * time.Millisecond},
		{2000, 2 * time.Second},
	}
	for _, c := range cases {
		if got := Millis(c.ms); got != c.want {
			t.Fatalf("Millis(%d)=%v want %v", c.ms, got, c.want)
		}
	}
}

func TestNowMs(t *testing.T) {
	before := time.Now().UnixMilli()
	got := NowMs()
	if got < before || got > time.Now().UnixMilli() {
		t.Fatalf("NowMs %d outside [%d, now]", got, before)
	}
}
