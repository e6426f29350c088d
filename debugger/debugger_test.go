package debugger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lookbusy1344/rv32-sdb/vm"
)

func TestExecuteCommandUnknown(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("bogus"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestExecuteCommandEmptyLineIsNoop(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("   "); err != nil {
		t.Errorf("blank line should not error, got %v", err)
	}
	if d.History.Size() != 0 {
		t.Errorf("blank line should not be recorded in history")
	}
}

func TestCmdPrint(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("p 1 + 2 * 3"); err != nil {
		t.Fatalf("p: %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "0x7") {
		t.Errorf("GetOutput() = %q, want it to contain 0x7", out)
	}
}

func TestCmdPrintInvalidExpression(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("p 5 / 0"); err != nil {
		t.Fatalf("p should not itself error on eval failure, got %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "false") {
		t.Errorf("GetOutput() = %q, want it to report false on division by zero", out)
	}
}

func TestCmdInfoRegisters(t *testing.T) {
	d := NewSDB(newTestVM())
	d.VM.CPU.SetGPR(10, 42) // a0

	if err := d.ExecuteCommand("info r"); err != nil {
		t.Fatalf("info r: %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "a0") {
		t.Errorf("GetOutput() = %q, want register a0 listed", out)
	}
	if !strings.Contains(out, "pc") {
		t.Errorf("GetOutput() = %q, want pc listed", out)
	}
}

func TestCmdInfoRequiresSubcommand(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("info"); err == nil {
		t.Error("expected error for info without a subcommand")
	}
}

func TestCmdWatchAndDelete(t *testing.T) {
	d := NewSDB(newTestVM())

	if err := d.ExecuteCommand("w $a0"); err != nil {
		t.Fatalf("w: %v", err)
	}
	d.GetOutput()

	if err := d.ExecuteCommand("info w"); err != nil {
		t.Fatalf("info w: %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "Watchpoint 0") {
		t.Errorf("GetOutput() = %q, want Watchpoint 0 listed", out)
	}

	if err := d.ExecuteCommand("d 0"); err != nil {
		t.Fatalf("d: %v", err)
	}
	out = d.GetOutput()
	if !strings.Contains(out, "deleted") {
		t.Errorf("GetOutput() = %q, want deletion confirmation", out)
	}
}

func TestCmdWatchInvalidExpressionDoesNotError(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("w 1 +"); err != nil {
		t.Fatalf("w should not itself error on invalid expression, got %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "Invalid expression") {
		t.Errorf("GetOutput() = %q, want invalid-expression message", out)
	}
}

func TestCmdDeleteUnknown(t *testing.T) {
	d := NewSDB(newTestVM())
	if err := d.ExecuteCommand("d 5"); err != nil {
		t.Fatalf("d should not itself error on unknown id, got %v", err)
	}
	out := d.GetOutput()
	if !strings.Contains(out, "No watchpoint") {
		t.Errorf("GetOutput() = %q, want no-watchpoint message", out)
	}
}

func TestCmdExamineWrapsAtExamineWordsPerRow(t *testing.T) {
	d := NewSDB(newTestVM())
	base := d.VM.Memory.Base()
	for i := 0; i < 8; i++ {
		if err := d.VM.Memory.PaddrWrite(base+uint32(i*4), 4, uint32(i)); err != nil {
			t.Fatalf("PaddrWrite: %v", err)
		}
	}

	cmd := fmt.Sprintf("x 8 0x%x", base)
	if err := d.ExecuteCommand(cmd); err != nil {
		t.Fatalf("x: %v", err)
	}
	out := d.GetOutput()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8/ExamineWordsPerRow {
		t.Errorf("x produced %d lines, want %d (ExamineWordsPerRow=%d)", len(lines), 8/ExamineWordsPerRow, ExamineWordsPerRow)
	}
}

func TestCmdContinueAndQuit(t *testing.T) {
	d := NewSDB(newTestVM())
	d.VM.State = vm.StateStop

	if err := d.ExecuteCommand("c"); err != nil {
		t.Fatalf("c: %v", err)
	}
	if d.VM.State != vm.StateRunning {
		t.Errorf("c should move state to Running, got %v", d.VM.State)
	}

	if err := d.ExecuteCommand("q"); err != nil {
		t.Fatalf("q: %v", err)
	}
	if d.VM.State != vm.StateQuit {
		t.Errorf("q should move state to Quit, got %v", d.VM.State)
	}
}

func TestCmdContinueRejectsEndedState(t *testing.T) {
	d := NewSDB(newTestVM())
	d.VM.State = vm.StateEnded
	if err := d.ExecuteCommand("c"); err == nil {
		t.Error("expected error continuing an ended program")
	}
}

func TestStepAndCheckTransitionsToStop(t *testing.T) {
	d := NewSDB(newTestVM())
	d.VM.CPU.SetGPR(10, 1)
	d.VM.State = vm.StateRunning

	id, err := d.Watchpoints.Add(d.VM, "$a0")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	d.VM.CPU.SetGPR(10, 2)
	d.StepAndCheck()

	if d.VM.State != vm.StateStop {
		t.Errorf("StepAndCheck should move state to Stop, got %v", d.VM.State)
	}
	out := d.GetOutput()
	if !strings.Contains(out, fmt.Sprintf("Watchpoint %d", id)) {
		t.Errorf("GetOutput() = %q, want a notification for watchpoint %d", out, id)
	}
}

func TestStepAndCheckDoesNotOverrideEnded(t *testing.T) {
	d := NewSDB(newTestVM())
	d.VM.CPU.SetGPR(10, 1)

	if _, err := d.Watchpoints.Add(d.VM, "$a0"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	d.VM.State = vm.StateEnded
	d.VM.CPU.SetGPR(10, 2)
	d.StepAndCheck()

	if d.VM.State != vm.StateEnded {
		t.Errorf("StepAndCheck should not override Ended state, got %v", d.VM.State)
	}
}
