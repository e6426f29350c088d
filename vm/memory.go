package vm

import (
	"encoding/binary"
	"fmt"
)

// Memory is the guest's flat physical address space. Unlike an ARM
// segmented model, RISC-V's pmem is one contiguous byte array starting
// at MemoryBase; everything the debugger reads through a DEREF operand
// goes through PaddrRead, the same oracle the reference monitor exposes
// to its expression evaluator.
type Memory struct {
	base  uint32
	bytes []byte

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory creates a zeroed physical memory of the given size starting
// at MemoryBase.
func NewMemory(size uint32) *Memory {
	return &Memory{
		base:  MemoryBase,
		bytes: make([]byte, size),
	}
}

// inBounds reports whether reading/writing `width` bytes at `addr` stays
// within the mapped physical memory.
func (m *Memory) inBounds(addr uint32, width uint32) bool {
	if addr < m.base {
		return false
	}
	offset := uint64(addr-m.base) + uint64(width)
	return offset <= uint64(len(m.bytes))
}

// PaddrRead reads `width` bytes (1, 2 or 4) at physical address addr and
// returns them zero-extended into a uint32, little-endian, matching the
// reference monitor's paddr_read. This is the only way guest memory
// reaches the expression evaluator; nothing in this package decodes or
// executes instructions.
func (m *Memory) PaddrRead(addr uint32, width int) (uint32, error) {
	switch width {
	case 1, 2, 4:
	default:
		return 0, fmt.Errorf("memory: unsupported read width %d", width)
	}
	if !m.inBounds(addr, uint32(width)) {
		return 0, fmt.Errorf("memory: address 0x%08x not mapped for %d-byte read", addr, width)
	}
	m.AccessCount++
	m.ReadCount++
	offset := addr - m.base
	switch width {
	case 1:
		return uint32(m.bytes[offset]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(m.bytes[offset : offset+2])), nil
	default:
		return binary.LittleEndian.Uint32(m.bytes[offset : offset+4]), nil
	}
}

// PaddrWrite writes `width` bytes (1, 2 or 4) of value at physical
// address addr, little-endian. Used by tests to stage guest state for
// the evaluator to observe; the REPL has no command that writes memory. The CPU
// fetch/decode/execute loop that would normally produce these writes is
// outside this package's scope. A value that does not fit in width
// bytes is rejected rather than silently truncated.
func (m *Memory) PaddrWrite(addr uint32, width int, value uint32) error {
	switch width {
	case 1, 2, 4:
	default:
		return fmt.Errorf("memory: unsupported write width %d", width)
	}
	if !m.inBounds(addr, uint32(width)) {
		return fmt.Errorf("memory: address 0x%08x not mapped for %d-byte write", addr, width)
	}
	offset := addr - m.base
	switch width {
	case 1:
		b, err := SafeUint32ToUint8(value)
		if err != nil {
			return fmt.Errorf("memory: %w", err)
		}
		m.bytes[offset] = b
	case 2:
		h, err := SafeUint32ToUint16(value)
		if err != nil {
			return fmt.Errorf("memory: %w", err)
		}
		binary.LittleEndian.PutUint16(m.bytes[offset:offset+2], h)
	default:
		binary.LittleEndian.PutUint32(m.bytes[offset:offset+4], value)
	}
	m.AccessCount++
	m.WriteCount++
	return nil
}

// LoadBytes copies data into physical memory starting at addr.
func (m *Memory) LoadBytes(addr uint32, data []byte) error {
	if !m.inBounds(addr, uint32(len(data))) {
		return fmt.Errorf("memory: load of %d bytes at 0x%08x exceeds mapped region", len(data), addr)
	}
	copy(m.bytes[addr-m.base:], data)
	return nil
}

// Base returns the physical base address of the mapped region.
func (m *Memory) Base() uint32 {
	return m.base
}

// Size returns the number of mapped bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.bytes))
}

// Reset zeroes memory and access counters.
func (m *Memory) Reset() {
	for i := range m.bytes {
		m.bytes[i] = 0
	}
	m.AccessCount = 0
	m.ReadCount = 0
	m.WriteCount = 0
}
