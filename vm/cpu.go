package vm

// RegisterNames lists the 33 registers the reference monitor exposes, in
// the canonical RV32 ABI order used by register lookup and by "info r".
// Index in this slice equals the GPR index in CPU.GPR, except for the
// final entry "pc" which aliases CPU.PC rather than a GPR slot.
var RegisterNames = [...]string{
	"$0", "ra", "sp", "gp", "tp", "t0", "t1", "t2", "s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
	"pc",
}

// GPRCount is the number of general-purpose registers (everything in
// RegisterNames except the trailing "pc" alias).
const GPRCount = len(RegisterNames) - 1

// CPU holds the architectural state of the emulated hart that the
// debugger is allowed to observe: the 32 general purpose registers and
// the program counter. $0 is wired to read as zero like the real ISA;
// SetGPR on index 0 is a silent no-op rather than an error, matching
// how the hardware treats writes to x0.
type CPU struct {
	GPR [GPRCount]uint32
	PC  uint32
}

// NewCPU creates a zeroed CPU.
func NewCPU() *CPU {
	return &CPU{}
}

// Reset clears all registers and the program counter.
func (c *CPU) Reset() {
	for i := range c.GPR {
		c.GPR[i] = 0
	}
	c.PC = 0
}

// GetGPR returns the value of general-purpose register i (0-31).
// Index 0 always reads as zero.
func (c *CPU) GetGPR(i int) uint32 {
	if i == 0 {
		return 0
	}
	return c.GPR[i]
}

// SetGPR sets general-purpose register i (0-31). Writes to index 0 are
// silently discarded.
func (c *CPU) SetGPR(i int, value uint32) {
	if i == 0 {
		return
	}
	c.GPR[i] = value
}

// RegisterByName looks up a register by its ABI name (as used in
// watchpoint and print expressions, e.g. "$sp" outside the dollar, or
// "pc"). It returns the value and whether the name was recognized.
func (c *CPU) RegisterByName(name string) (uint32, bool) {
	for i, n := range RegisterNames {
		if n != name {
			continue
		}
		if i == GPRCount {
			return c.PC, true
		}
		return c.GetGPR(i), true
	}
	return 0, false
}
