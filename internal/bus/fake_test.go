package bus

import (
	"errors"
	"testing"
)

func TestFakeBusRecordsWrites(t *testing.T) {
	f := NewFakeBus()

	if err := f.SetChannel(0, 17, On); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if err := f.SetChannel(0, 17, 0); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if err := f.SetChannel(0, 22, On); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	if len(f.Writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(f.Writes))
	}
	if got := f.WritesFor(17); len(got) != 2 || got[0] != On || got[1] != 0 {
		t.Errorf("WritesFor(17) = %v, want [255 0]", got)
	}
	if f.Last[17] != 0 {
		t.Errorf("Last[17] = %d, want 0", f.Last[17])
	}
	if f.Last[22] != On {
		t.Errorf("Last[22] = %d, want %d", f.Last[22], On)
	}
}

func TestFakeBusSetError(t *testing.T) {
	f := NewFakeBus()
	f.SetError = errors.New("bus fault")

	if err := f.SetChannel(0, 17, On); err == nil {
		t.Fatal("expected error from SetChannel")
	}
	if len(f.Writes) != 0 {
		t.Errorf("failed write should not be recorded, got %d writes", len(f.Writes))
	}
}

func TestFakeBusReset(t *testing.T) {
	f := NewFakeBus()
	f.SetChannel(0, 17, On)
	f.Close()

	f.Reset()
	if len(f.Writes) != 0 || len(f.Last) != 0 || f.Closed {
		t.Errorf("Reset did not clear state: %+v", f)
	}
}
