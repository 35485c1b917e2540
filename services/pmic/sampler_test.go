package pmic

import (
	"context"
	"testing"
	"time"

	"npm1300-go/errcode"
)

func recv(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestSamplerFirstCycleAndReadNow(t *testing.T) {
	ad, _ := newSimAdaptor(t, Params{})
	sink := make(chan Result, 4)
	s := NewSampler(SamplerConfig{Period: time.Hour}, ad, sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	r := recv(t, sink)
	if r.ID != "pmic0" || r.Code != errcode.OK || len(r.Sample) != 3 {
		t.Fatalf("first result: %+v", r)
	}

	if !s.ReadNow() {
		t.Fatal("ReadNow refused on an empty queue")
	}
	if r := recv(t, sink); r.Err != nil {
		t.Fatalf("on-demand result: %v", r.Err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestSamplerPeriodic(t *testing.T) {
	ad, _ := newSimAdaptor(t, Params{})
	sink := make(chan Result, 8)
	s := NewSampler(SamplerConfig{Period: 10 * time.Millisecond}, ad, sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 3; i++ {
		recv(t, sink)
	}
}

func TestSamplerReportsCode(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	bus.SetChargerMode(0)
	sink := make(chan Result, 1)
	s := NewSampler(SamplerConfig{Period: time.Hour}, ad, sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	r := recv(t, sink)
	if r.Code != errcode.UnexpectedState {
		t.Fatalf("code %s, err %v", r.Code, r.Err)
	}
}

func TestReadNowQueueFull(t *testing.T) {
	ad, _ := newSimAdaptor(t, Params{})
	s := NewSampler(SamplerConfig{InputQueueSize: 1}, ad, make(chan Result), nil)
	if !s.ReadNow() {
		t.Fatal("first request refused")
	}
	if s.ReadNow() {
		t.Fatal("second request accepted on a full queue")
	}
}
