package vm

import "testing"

func TestRegisterByName(t *testing.T) {
	v := NewVM(4096)
	v.CPU.SetGPR(2, 0x1000) // sp is index 2

	tests := []struct {
		name    string
		want    uint32
		wantOk  bool
	}{
		{"sp", 0x1000, true},
		{"$0", 0, true},
		{"pc", 0, true},
		{"bogus", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.RegisterByName(tt.name)
			if ok != tt.wantOk {
				t.Fatalf("RegisterByName(%q) ok = %v, want %v", tt.name, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("RegisterByName(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestRegisterByNameZeroAlwaysZero(t *testing.T) {
	v := NewVM(4096)
	v.CPU.SetGPR(0, 0xDEADBEEF)
	got, ok := v.RegisterByName("$0")
	if !ok || got != 0 {
		t.Errorf("$0 should always read as 0, got %d, ok=%v", got, ok)
	}
}

func TestRegisterByNamePC(t *testing.T) {
	v := NewVM(4096)
	v.CPU.PC = 0x80000004
	got, ok := v.RegisterByName("pc")
	if !ok || got != 0x80000004 {
		t.Errorf("pc = %#x, ok=%v, want 0x80000004", got, ok)
	}
}

func TestStepRequiresRunningState(t *testing.T) {
	v := NewVM(4096)
	v.State = StateStop
	if err := v.Step(); err == nil {
		t.Error("Step should error when state is not RUN")
	}
}
