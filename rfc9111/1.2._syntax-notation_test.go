package rfc9111

import (
	"testing"
	"time"
)

func TestToDeltaSeconds(t *testing.T) {
	fiveSeconds := 5 * time.Second
	if s := toDeltaSeconds(fiveSeconds); s != "5" {
		t.Fatalf("Delta seconds is %s", s)
	}
	if s := toDeltaSeconds(1500 * time.Millisecond); s != "1" {
		t.Fatalf("Delta seconds is %s", s)
	}
	if s := toDeltaSeconds(-time.Second); s != "0" {
		t.Fatalf("Delta seconds is %s", s)
	}
}

func TestDeltaSeconds(t *testing.T) {
	if d, ok := deltaSeconds("7200"); !ok || d != 7200*time.Second {
		t.Fatalf("Delta seconds is %s", d)
	}
	if _, ok := deltaSeconds("-1"); ok {
		t.Fatal("Negative delta seconds accepted")
	}
	if _, ok := deltaSeconds("1.5"); ok {
		t.Fatal("Fractional delta seconds accepted")
	}
}

func TestDeltaSecondsOverflow(t *testing.T) {
	d, ok := deltaSeconds("99999999999999999999999")
	if !ok || d != maxDeltaSeconds*time.Second {
		t.Fatalf("Delta seconds is %s", d)
	}
}
