package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestBurstCollapsesToOneCall(t *testing.T) {
	var calls atomic.Int32
	d := New(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	d.Trigger()
	d.Flush()

	if got := calls.Load(); got != 1 {
		t.Errorf("calls after Flush = %d, want 1", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after Flush")
	}
}

func TestFlushWithoutTriggerIsNoop(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	d.Flush()
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestCancelDropsPendingCall(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls after Cancel = %d, want 0", got)
	}
}

func TestSeparateQuietPeriodsFireSeparately(t *testing.T) {
	var calls atomic.Int32
	d := New(10*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	d.Trigger()
	time.Sleep(50 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}
