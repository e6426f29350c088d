// Package vm models the published guest state of the simulated hart:
// its registers and physical memory. Instruction fetch, decode and
// execute are owned elsewhere (the instruction-set simulator this
// package is embedded in); VM only exposes the read surface the
// debugger's expression evaluator is allowed to consume, plus the
// State machine the monitor reports against.
package vm

import "fmt"

// VM is the guest machine state the debugger observes: its CPU
// registers, its physical memory, and the monitor's run state.
type VM struct {
	CPU    *CPU
	Memory *Memory
	State  State
}

// NewVM creates a VM with the given physical memory size, CPU
// registers zeroed and state RUN.
func NewVM(memorySize uint32) *VM {
	return &VM{
		CPU:    NewCPU(),
		Memory: NewMemory(memorySize),
		State:  StateRunning,
	}
}

// Reset returns CPU and Memory to their zero state and State to RUN.
func (v *VM) Reset() {
	v.CPU.Reset()
	v.Memory.Reset()
	v.State = StateRunning
}

// RegisterByName resolves an ABI register name (already stripped of any
// leading "$") to its current value.
func (v *VM) RegisterByName(name string) (uint32, bool) {
	return v.CPU.RegisterByName(name)
}

// PaddrRead reads width bytes of physical memory, the oracle a DEREF
// operand calls into.
func (v *VM) PaddrRead(addr uint32, width int) (uint32, error) {
	return v.Memory.PaddrRead(addr, width)
}

// Step is the per-instruction state guard. The instruction-set
// simulator that actually fetches, decodes and executes lives outside
// this package, so Step executes nothing and records nothing: it only
// returns an error unless the state is RUN. Embedding code mutates
// CPU/Memory directly to reflect the real executed instruction and then
// calls debugger.SDB.StepAndCheck for the watchpoint checks.
func (v *VM) Step() error {
	if v.State != StateRunning {
		return fmt.Errorf("vm: cannot step while state is %s", v.State)
	}
	return nil
}
