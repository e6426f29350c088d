package vm

// Physical memory layout for the guest image the debugger inspects.
const (
	MemoryBase        = 0x80000000 // pmem base address, matches the reference monitor
	DefaultMemorySize = 0x08000000 // 128MB, generous default guest physical memory
)

// Expression engine bounds. These are hard limits, not configurable knobs:
// a lexeme or token stream that exceeds them is a user input error, not a
// capacity that grows with use.
const (
	MaxTokens    = 32  // maximum tokens held in one token buffer
	MaxLexemeLen = 31  // longest lexeme a single token may hold (NUL excluded)
	MaxExprLen   = 255 // longest watchpoint expression string accepted (NUL excluded)
)

// WatchpointPoolSize is the fixed capacity of the watchpoint pool. Once
// exhausted, allocation aborts the process rather than growing the pool:
// a fixed pool keeps watchpoint ids stable for the life of a session.
const WatchpointPoolSize = 32

// Memory overflow protection for address arithmetic.
const (
	Address32BitMax     = ^uint32(0)
	Address32BitMaxSafe = 0xFFFFFFFC // highest address allowing a 4-byte access without wraparound
)
